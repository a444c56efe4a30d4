package minio

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/computefp/pkg/errors"
)

func newTestUploader(api *MockMinIOAPI, prefix string) *Uploader {
	c := newMinIOClientWithAPI(api, &MinIOConfig{Bucket: "fp", Prefix: prefix}, nil)
	return NewUploader(c, nil)
}

func TestUploader_ObjectKey(t *testing.T) {
	cases := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "data/in.smi.fp", "run-1/in.smi.fp"},
		{"exports", "/abs/dir/in.smi.fp", "exports/run-1/in.smi.fp"},
		{"/exports/daily/", "in.smi.fp", "exports/daily/run-1/in.smi.fp"},
	}
	for _, tc := range cases {
		u := newTestUploader(new(MockMinIOAPI), tc.prefix)
		assert.Equal(t, tc.want, u.ObjectKey("run-1", tc.path))
	}
}

func TestUploader_Export(t *testing.T) {
	api := new(MockMinIOAPI)
	u := newTestUploader(api, "exports")
	ctx := context.Background()

	api.On("BucketExists", mock.Anything, "fp").Return(true, nil).Once()
	api.On("FPutObject", mock.Anything, "fp", "exports/run-1/in.smi.fp", "data/in.smi.fp",
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == fpContentType &&
				opts.UserMetadata["run-id"] == "run-1" &&
				opts.PartSize == 16*1024*1024
		})).Return(minio.UploadInfo{Size: 42}, nil).Twice()

	require.NoError(t, u.Export(ctx, "run-1", "data/in.smi.fp"))
	require.NoError(t, u.Export(ctx, "run-1", "data/in.smi.fp"))
	api.AssertExpectations(t)
	assert.Equal(t, "minio", u.Name())
	assert.NoError(t, u.Close())
}

func TestUploader_ExportFailure(t *testing.T) {
	api := new(MockMinIOAPI)
	u := newTestUploader(api, "")

	api.On("BucketExists", mock.Anything, "fp").Return(true, nil)
	api.On("FPutObject", mock.Anything, "fp", "run-2/out.fp", "out.fp", mock.Anything).
		Return(minio.UploadInfo{}, stderrors.New("open out.fp: no such file or directory"))

	err := u.Export(context.Background(), "run-2", "out.fp")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExportFailed))
	assert.Contains(t, err.Error(), "fp/run-2/out.fp")
}

func TestUploader_BucketFailureSkipsUpload(t *testing.T) {
	api := new(MockMinIOAPI)
	u := newTestUploader(api, "")
	api.On("BucketExists", mock.Anything, "fp").Return(false, stderrors.New("timeout"))

	err := u.Export(context.Background(), "run-3", "out.fp")
	require.Error(t, err)
	api.AssertNotCalled(t, "FPutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

//Personal.AI order the ending
