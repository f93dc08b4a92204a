package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xlsx")
	require.Error(t, err)
}

func TestEncodeCSV(t *testing.T) {
	users := []models.User{{
		ID: "1", Name: "John Doe", Email: "john@x.io", Role: models.RoleAdmin,
		AssignedStores: []string{"Downtown Store", "Mall Branch"}, Status: models.UserActive, Password: "secret",
	}}

	data, err := Encode(FormatCSV, users)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,email,role,assignedStores,lastLogin,status", lines[0])
	assert.Equal(t, "1,John Doe,john@x.io,Admin,Downtown Store; Mall Branch,,Active", lines[1])
	assert.NotContains(t, string(data), "secret")
}

func TestEncodeCSV_Numbers(t *testing.T) {
	data, err := Encode(FormatCSV, models.SampleProducts()[:1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Premium Coffee Beans,1234567890123,299.99,10,269.99,Beverages,true,150,active")
}

func TestEncodeJSON_KeepsFieldOrder(t *testing.T) {
	data, err := Encode(FormatJSON, models.SampleESLs()[:1])
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "[\n  {\n    \"id\": \"ESL-001\""), s)
	assert.Less(t, strings.Index(s, "labelSize"), strings.Index(s, "batteryLevel"))
	assert.Contains(t, s, `"isRecentlySync": true`)
}

func TestEncodeYAML(t *testing.T) {
	data, err := Encode(FormatYAML, models.SampleStores()[:2])
	require.NoError(t, err)

	var back []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "Downtown Store", back[0]["name"])
	assert.Equal(t, 245, back[0]["eslCount"])
	assert.Equal(t, "1", back[0]["id"])
	assert.Less(t, strings.Index(string(data), "name:"), strings.Index(string(data), "location:"))
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(FormatJSON, []models.Store{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode(FormatCSV, []models.Store(nil))
	require.NoError(t, err)
	assert.Equal(t, "id,name,location,manager,managerId,eslCount,status,lastSync\n", string(data))
}

func TestFileExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := NewFileExporter(dir)

	name := FileName("stores", FormatCSV, time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC))
	assert.Equal(t, "stores-20240115-143025.csv", name)

	loc, err := e.Export(context.Background(), name, FormatCSV, []byte("id\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))
}

type fakeS3 struct {
	Err  error
	Last *s3.PutObjectInput
	Body string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.Last = in
	b, _ := io.ReadAll(in.Body)
	f.Body = string(b)
	if f.Err != nil {
		return nil, f.Err
	}
	return &s3.PutObjectOutput{}, nil
}

func stubS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()
	oldLoad, oldNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = oldLoad, oldNew })

	opts := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		var lo config.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		opts.Region = cfg.Region
		for _, fn := range optFns {
			fn(opts)
		}
		return fake
	}
	return opts
}

func TestS3Exporter(t *testing.T) {
	fake := &fakeS3{}
	opts := stubS3(t, fake)

	e, err := NewS3Exporter(context.Background(), S3Config{
		Endpoint: "http://localhost:9000", Region: "us-east-1", Bucket: "esl-exports",
		AccessKey: "minio", SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", opts.Region)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))

	loc, err := e.Export(context.Background(), "esls.json", FormatJSON, []byte("[]"))
	require.NoError(t, err)

	key := aws.ToString(fake.Last.Key)
	assert.Equal(t, "s3://esl-exports/"+key, loc)
	assert.True(t, strings.HasPrefix(key, "exports/"))
	assert.True(t, strings.HasSuffix(key, "-esls.json"))
	assert.Equal(t, "application/json", aws.ToString(fake.Last.ContentType))
	assert.Equal(t, "[]", fake.Body)
}

func TestS3Exporter_PutError(t *testing.T) {
	boom := errors.New("access denied")
	stubS3(t, &fakeS3{Err: boom})

	e, err := NewS3Exporter(context.Background(), S3Config{Region: "us-east-1", Bucket: "b"})
	require.NoError(t, err)

	_, err = e.Export(context.Background(), "x.csv", FormatCSV, []byte("x"))
	require.ErrorIs(t, err, boom)
}

func TestS3Exporter_LoadConfigError(t *testing.T) {
	stubS3(t, &fakeS3{})
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	_, err := NewS3Exporter(context.Background(), S3Config{Bucket: "b"})
	require.Error(t, err)
}
