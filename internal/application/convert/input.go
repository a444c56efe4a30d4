package convert

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// inputFile reads a plain or gzip-compressed file.
type inputFile struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

func (f *inputFile) Close() error {
	var gzErr error
	if f.gz != nil {
		gzErr = f.gz.Close()
	}
	if err := f.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// openInput opens path for reading.  Unless detection is disabled, input
// starting with the gzip magic bytes is decompressed transparently.
func openInput(path string, detectGzip bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	if !detectGzip {
		return &inputFile{Reader: br, file: f}, nil
	}

	magic, err := br.Peek(len(gzipMagic))
	if err != nil || magic[0] != gzipMagic[0] || magic[1] != gzipMagic[1] {
		// Short files cannot be gzip; let the line reader see them as they are.
		return &inputFile{Reader: br, file: f}, nil
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &inputFile{Reader: gz, file: f, gz: gz}, nil
}

//Personal.AI order the ending
