package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"

	"github.com/mcdev12/orderalone/go/internal/models"
)

// imageUploader stores a local file under key and returns its public URL.
type imageUploader interface {
	Upload(ctx context.Context, key, localPath string) (string, error)
}

type s3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// newS3Uploader targets any S3-compatible store. S3_ENDPOINT switches to path-style
// addressing for MinIO and R2.
func newS3Uploader(ctx context.Context, bucket string) (*s3Uploader, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(getEnv("S3_REGION", "auto")),
	}
	if id := os.Getenv("S3_ACCESS_KEY_ID"); id != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, os.Getenv("S3_SECRET_ACCESS_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	endpoint := os.Getenv("S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := os.Getenv("S3_PUBLIC_BASE_URL")
	if baseURL == "" {
		if endpoint != "" {
			baseURL = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
		}
	}

	return &s3Uploader{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, key, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

// imageKey is menus/<menu-slug>/<item-slug><ext>.
func imageKey(menuName, itemName, localPath string) string {
	return fmt.Sprintf("menus/%s/%s%s", slug.Make(menuName), slug.Make(itemName), strings.ToLower(filepath.Ext(localPath)))
}

// publishImages uploads every local image path in menus, relative to baseDir, and
// replaces it with the returned URL. Empty paths and URLs are left alone.
func publishImages(ctx context.Context, menus []seedMenu, baseDir string, uploader imageUploader) (int, error) {
	uploaded := 0
	publish := func(menuName string, item *models.MenuItem) error {
		if item.Img == "" || strings.HasPrefix(item.Img, "http://") || strings.HasPrefix(item.Img, "https://") {
			return nil
		}
		localPath := item.Img
		if !filepath.IsAbs(localPath) {
			localPath = filepath.Join(baseDir, localPath)
		}
		url, err := uploader.Upload(ctx, imageKey(menuName, item.Name, localPath), localPath)
		if err != nil {
			return err
		}
		item.Img = url
		uploaded++
		return nil
	}

	for mi := range menus {
		menu := &menus[mi]
		for ci := range menu.Data {
			category := &menu.Data[ci]
			for ii := range category.Menus {
				if err := publish(menu.Name, &category.Menus[ii]); err != nil {
					return uploaded, err
				}
			}
			for gi := range category.Toping {
				group := &category.Toping[gi]
				for ii := range group.Items {
					if err := publish(menu.Name, &group.Items[ii]); err != nil {
						return uploaded, err
					}
				}
			}
		}
	}
	return uploaded, nil
}
