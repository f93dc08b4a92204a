package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/eslconsole/internal/filex"
	"github.com/google/uuid"
)

// Exporter stores an encoded document and reports where it went.
type Exporter interface {
	Export(ctx context.Context, name string, f Format, data []byte) (location string, err error)
}

// FileName builds "<view>-<yyyymmdd-hhmmss>.<ext>".
func FileName(view string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", view, now.Format("20060102-150405"), f.Ext())
}

// FileExporter writes documents into a local directory.
type FileExporter struct {
	Dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

func (e *FileExporter) Export(ctx context.Context, name string, f Format, data []byte) (string, error) {
	dir, err := filex.EnsureDir(e.Dir)
	if err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("export file: %w", err)
	}
	return path, nil
}

type S3Config struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

func (c S3Config) Enabled() bool { return c.Bucket != "" }

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Exporter uploads documents to a bucket, under
// exports/<yyyy>/<mm>/<dd>/<uuid>-<name>.
type S3Exporter struct {
	cfg    S3Config
	client putObjectAPI
}

// NewS3Exporter builds the client from static credentials. A custom endpoint
// (MinIO) switches the client to path-style addressing.
func NewS3Exporter(ctx context.Context, c S3Config) (*S3Exporter, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Exporter{cfg: c, client: client}, nil
}

func storageKey(name string, now time.Time) string {
	return fmt.Sprintf("exports/%d/%02d/%02d/%s-%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), name)
}

func (e *S3Exporter) Export(ctx context.Context, name string, f Format, data []byte) (string, error) {
	key := storageKey(name, time.Now())
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(f.ContentType()),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", e.cfg.Bucket, key, err)
	}
	return "s3://" + e.cfg.Bucket + "/" + key, nil
}
