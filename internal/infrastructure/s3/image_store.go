// Package s3 almacena las imágenes de los ítems del menú en un bucket S3 (o compatible).
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/pkg/config"
)

var _ ports.ImageStore = (*ImageStore)(nil)

// putObjectAPI subconjunto del cliente S3 usado (permite fakes en tests).
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore implementa ports.ImageStore.
type ImageStore struct {
	client     putObjectAPI
	bucket     string
	publicBase string
}

// New carga la configuración AWS (credenciales estáticas si se indicaron, cadena por defecto si no).
// Con S3_ENDPOINT se usa direccionamiento path-style para MinIO/LocalStack.
func New(ctx context.Context, cfg config.S3Config) (*ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newImageStore(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newImageStore(client putObjectAPI, bucket, publicBase string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

// Put sube el objeto y devuelve la URL pública, o la key si no hay URL base configurada.
func (s *ImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("s3: subir %s: %w", key, err)
	}
	return s.location(key), nil
}

func (s *ImageStore) location(key string) string {
	if s.publicBase == "" {
		return key
	}
	return s.publicBase + "/" + key
}
