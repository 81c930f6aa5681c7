// Package oss 对象存储单元测试
package oss

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 常见图片文件头
var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gifHeader  = []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}
)

func TestMockUploader_Upload(t *testing.T) {
	uploader := NewMockUploader()
	ctx := context.Background()

	t.Run("上传商品主图", func(t *testing.T) {
		reader := bytes.NewReader(pngHeader)

		url, err := uploader.Upload(ctx, "product/2026/09/01/bedding-set.png", reader)
		require.NoError(t, err)
		assert.Contains(t, url, "product/2026/09/01/bedding-set.png")

		assert.Equal(t, pngHeader, uploader.Files["product/2026/09/01/bedding-set.png"])
	})

	t.Run("上传头像", func(t *testing.T) {
		reader := bytes.NewReader(jpegHeader)

		url, err := uploader.Upload(ctx, "avatar/2026/09/01/user7.jpg", reader)
		require.NoError(t, err)
		assert.Contains(t, url, "avatar/2026/09/01/user7.jpg")
	})
}

func TestMockUploader_UploadFile(t *testing.T) {
	uploader := NewMockUploader()
	ctx := context.Background()

	url, err := uploader.UploadFile(ctx, "review/photo.jpg", "/tmp/review-photo.jpg")
	require.NoError(t, err)
	assert.Contains(t, url, "review/photo.jpg")

	// 仅存储路径
	assert.Equal(t, []byte("/tmp/review-photo.jpg"), uploader.Files["review/photo.jpg"])
}

func TestMockUploader_Delete(t *testing.T) {
	uploader := NewMockUploader()
	ctx := context.Background()

	uploader.Upload(ctx, "product/obsolete.jpg", bytes.NewReader(jpegHeader))
	assert.Contains(t, uploader.Files, "product/obsolete.jpg")

	t.Run("删除已有图片", func(t *testing.T) {
		err := uploader.Delete(ctx, "product/obsolete.jpg")
		require.NoError(t, err)
		assert.NotContains(t, uploader.Files, "product/obsolete.jpg")
	})

	t.Run("删除不存在的图片不报错", func(t *testing.T) {
		err := uploader.Delete(ctx, "product/missing.jpg")
		require.NoError(t, err)
	})
}

func TestMockUploader_GetURL(t *testing.T) {
	uploader := NewMockUploader()

	url := uploader.GetURL("avatar/user7.png")
	assert.Equal(t, "https://mock-cdn.textile-mall.test/avatar/user7.png", url)
}

func TestMockUploader_GetSignedURL(t *testing.T) {
	uploader := NewMockUploader()

	url, err := uploader.GetSignedURL("product/draft.jpg", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "product/draft.jpg")
	assert.Contains(t, url, "expires=")
}

func TestGenerateObjectKey(t *testing.T) {
	t.Run("按日期分目录", func(t *testing.T) {
		key := GenerateObjectKey("product", "bedding.jpg")

		assert.True(t, strings.HasPrefix(key, "product/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		// product/年/月/日/散列名
		parts := strings.Split(key, "/")
		assert.Len(t, parts, 5)
	})

	t.Run("保留扩展名", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(GenerateObjectKey("avatar", "me.png"), ".png"))
		assert.True(t, strings.HasSuffix(GenerateObjectKey("review", "shot.webp"), ".webp"))
	})

	t.Run("同名文件生成不同键", func(t *testing.T) {
		key1 := GenerateObjectKey("product", "bedding.jpg")
		key2 := GenerateObjectKey("product", "bedding.jpg")
		assert.NotEqual(t, key1, key2)
	})
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"main.jpg", "image/jpeg"},
		{"main.jpeg", "image/jpeg"},
		{"detail.png", "image/png"},
		{"banner.gif", "image/gif"},
		{"swatch.webp", "image/webp"},
		{"logo.svg", "image/svg+xml"},
		{"unknown.xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetContentType(tt.filename))
		})
	}

	t.Run("大小写不敏感", func(t *testing.T) {
		assert.Equal(t, "image/jpeg", GetContentType("MAIN.JPG"))
		assert.Equal(t, "image/png", GetContentType("Detail.PNG"))
	})
}

func TestValidateImageFile(t *testing.T) {
	t.Run("JPEG 商品图", func(t *testing.T) {
		err := ValidateImageFile("bedding.jpg", 10*1024*1024, bytes.NewReader(jpegHeader))
		require.NoError(t, err)
	})

	t.Run("PNG 商品图", func(t *testing.T) {
		err := ValidateImageFile("detail.png", 10*1024*1024, bytes.NewReader(pngHeader))
		require.NoError(t, err)
	})

	t.Run("GIF 动图", func(t *testing.T) {
		err := ValidateImageFile("banner.gif", 10*1024*1024, bytes.NewReader(gifHeader))
		require.NoError(t, err)
	})

	t.Run("不支持的扩展名", func(t *testing.T) {
		err := ValidateImageFile("manual.pdf", 10*1024*1024, bytes.NewReader([]byte{}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "不支持的图片格式")
	})

	t.Run("文本伪装成图片", func(t *testing.T) {
		err := ValidateImageFile("fake.jpg", 10*1024*1024, bytes.NewReader([]byte("not an image")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "不是有效的图片")
	})

	t.Run("WebP 格式", func(t *testing.T) {
		// http.DetectContentType 对部分 WebP 头识别有限，扩展名校验先通过
		webpHeader := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 0x57, 0x45, 0x42, 0x50}
		err := ValidateImageFile("swatch.webp", 10*1024*1024, bytes.NewReader(webpHeader))
		if err != nil {
			assert.Contains(t, err.Error(), "不是有效的图片")
		}
	})
}

func TestUploaderInterface(t *testing.T) {
	var _ Uploader = (*MockUploader)(nil)
	var _ Uploader = (*AliyunUploader)(nil)
}

func TestAliyunUploader_getFullKey(t *testing.T) {
	t.Run("无基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{config: &AliyunConfig{BasePath: ""}}
		assert.Equal(t, "product/main.jpg", uploader.getFullKey("product/main.jpg"))
	})

	t.Run("有基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{config: &AliyunConfig{BasePath: "mall"}}
		assert.Equal(t, "mall/product/main.jpg", uploader.getFullKey("product/main.jpg"))
	})

	t.Run("带斜杠的基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{config: &AliyunConfig{BasePath: "mall/"}}
		result := uploader.getFullKey("product/main.jpg")
		assert.Contains(t, result, "mall")
		assert.Contains(t, result, "product/main.jpg")
	})
}

func TestAliyunUploader_GetURL(t *testing.T) {
	t.Run("使用默认域名", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{
				BucketName: "textile-mall",
				Endpoint:   "oss-cn-hangzhou.aliyuncs.com",
			},
		}
		url := uploader.GetURL("product/main.png")
		assert.Equal(t, "https://textile-mall.oss-cn-hangzhou.aliyuncs.com/product/main.png", url)
	})

	t.Run("使用自定义域名", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{Domain: "https://cdn.textile-mall.com"},
		}
		url := uploader.GetURL("product/main.png")
		assert.Equal(t, "https://cdn.textile-mall.com/product/main.png", url)
	})

	t.Run("自定义域名带尾部斜杠", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{Domain: "https://cdn.textile-mall.com/"},
		}
		url := uploader.GetURL("product/main.png")
		assert.Equal(t, "https://cdn.textile-mall.com/product/main.png", url)
	})

	t.Run("带基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{Domain: "https://cdn.textile-mall.com", BasePath: "mall"},
		}
		url := uploader.GetURL("product/main.png")
		assert.Contains(t, url, "mall")
		assert.Contains(t, url, "product/main.png")
	})
}
