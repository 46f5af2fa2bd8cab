// file: internals/helpers/oss/oss_client.go
package oss

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "sharehub/"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// light bucket verification
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Upload / download
======================================================================= */

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string, inline bool) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if inline {
		opts = append(opts, oss.ContentDisposition("inline"))
	}
	return s.Bucket.PutObject(s.withPrefix(key), r, opts...)
}

// OpenObject streams an object back (caller closes). Used by the ZIP archive
// endpoint to pipe slides through without buffering whole files.
func (s *OSSService) OpenObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Bucket.GetObject(s.withPrefix(key), oss.WithContext(ctx))
}

// SignedURL returns a short-lived GET URL; downloads redirect here instead of
// proxying bytes through the API.
func (s *OSSService) SignedURL(key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return s.Bucket.SignURL(s.withPrefix(key), oss.HTTPGet, int64(ttl.Seconds()))
}

/* =======================================================================
   Delete
======================================================================= */

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(s.withPrefix(key), oss.WithContext(ctx))
}

// DeleteObjects removes many keys best-effort and reports the failures.
// Storage orphans are acceptable; callers log them and move on.
func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) (failed map[string]error) {
	failed = map[string]error{}
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err := s.DeleteObject(ctx, k); err != nil {
			failed[k] = err
		}
	}
	return failed
}

func (s *OSSService) PublicURL(key string) string {
	host := s.Endpoint
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, s.withPrefix(key))
}

func (s *OSSService) withPrefix(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	if strings.HasPrefix(key, s.Prefix+"/") {
		return key
	}
	return s.Prefix + "/" + key
}
