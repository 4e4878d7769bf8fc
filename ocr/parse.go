package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BaSui01/ocrflow/types"
)

// openFile is swapped in tests to observe that uploads are closed.
var openFile = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Parse 按文档类型分派到 Provider 的对应方法.
func Parse(ctx context.Context, p Provider, kind Kind, doc *Document, language string) (Envelope, error) {
	switch kind {
	case KindReceipt:
		env, err := p.ParseReceipt(ctx, doc, language)
		return erase(env, err)
	case KindInvoice:
		env, err := p.ParseInvoice(ctx, doc, language)
		return erase(env, err)
	case KindFinancial:
		env, err := p.ParseFinancialDocument(ctx, doc, language)
		return erase(env, err)
	case KindIdentity:
		env, err := p.ParseIdentity(ctx, doc)
		return erase(env, err)
	default:
		return nil, types.NewInvalidRequestError(fmt.Sprintf("unsupported document kind %q", kind))
	}
}

// erase keeps a failed call from turning into a non-nil interface holding a nil pointer.
func erase[T any](env *ResultEnvelope[T], err error) (Envelope, error) {
	if err != nil {
		return nil, err
	}
	return env, nil
}

// ParseFile 打开 path 并解析. 文件在所有路径上都会被关闭.
func ParseFile(ctx context.Context, p Provider, kind Kind, path, language string) (Envelope, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, types.NewInvalidRequestError("failed to open document").WithCause(err)
	}
	defer f.Close()

	return Parse(ctx, p, kind, &Document{Name: filepath.Base(path), Body: f}, language)
}
