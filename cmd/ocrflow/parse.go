package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/ocrflow/internal/cache"
	"github.com/BaSui01/ocrflow/ocr"
	"github.com/BaSui01/ocrflow/types"
)

const defaultParseConcurrency = 4

// parseResult 是 parse 命令输出的一行.
type parseResult struct {
	File   string       `json:"file"`
	Result ocr.Envelope `json:"result,omitempty"`
	Error  *parseError  `json:"error,omitempty"`
}

type parseError struct {
	Code           types.ErrorCode `json:"code"`
	Message        string          `json:"message"`
	UpstreamStatus int             `json:"upstream_status,omitempty"`
}

// runParse 解析本地文件, 每个文件输出一行 JSON, 顺序与参数顺序一致.
// 返回值: 0 全部成功, 1 有文件失败或无法构造供应商, 2 参数错误.
func runParse(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kindName := fs.String("kind", string(ocr.KindReceipt), "Document kind: receipt, invoice, financial or identity")
	language := fs.String("language", "", "Locale hint such as fr-FR")
	concurrency := fs.Int("concurrency", defaultParseConcurrency, "Files parsed in parallel")
	configPath, envFile := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "parse: no input files")
		return 2
	}
	kind, err := ocr.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintf(stderr, "parse: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(stderr, "parse: %v\n", err)
		return 1
	}
	// stdout 只输出结果
	cfg.Log.OutputPaths = []string{"stderr"}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "parse: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, pool, _, err := openCredentialStore(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}
	if err != nil {
		fmt.Fprintf(stderr, "parse: failed to open credential store: %v\n", err)
		return 1
	}

	resolver := newMindeeResolver(store, cfg.Providers.Mindee, cfg.Cache.TTL, logger)
	rawCache, err := openCache(ctx, cfg, logger)
	switch {
	case err != nil:
		logger.Warn("raw response cache unavailable, continuing without it", zap.Error(err))
	case rawCache != nil:
		defer rawCache.Close()
		resolver.withCache(cache.NewRawResponseCache(rawCache, nil))
	}

	provider, err := resolver.Resolve(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "parse: %v\n", err)
		return 1
	}

	results := parseFiles(ctx, provider, kind, *language, files, *concurrency)
	failed, err := writeResults(stdout, results)
	if err != nil {
		fmt.Fprintf(stderr, "parse: failed to write results: %v\n", err)
		return 1
	}
	if failed > 0 {
		logger.Warn("some documents failed", zap.Int("failed", failed), zap.Int("total", len(files)))
		return 1
	}
	return 0
}

// parseFiles 并发解析, 单个文件失败不影响其他文件. 结果按输入顺序返回.
func parseFiles(ctx context.Context, p ocr.Provider, kind ocr.Kind, language string, files []string, concurrency int) []parseResult {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]parseResult, len(files))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range files {
		g.Go(func() error {
			results[i] = parseOne(ctx, p, kind, language, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func parseOne(ctx context.Context, p ocr.Provider, kind ocr.Kind, language, path string) parseResult {
	if err := ctx.Err(); err != nil {
		return parseResult{File: path, Error: toParseError(err)}
	}
	env, err := ocr.ParseFile(ctx, p, kind, path, language)
	if err != nil {
		return parseResult{File: path, Error: toParseError(err)}
	}
	return parseResult{File: path, Result: env}
}

func toParseError(err error) *parseError {
	apiErr, ok := types.AsError(err)
	if !ok {
		return &parseError{Code: types.ErrInternalError, Message: err.Error()}
	}
	pe := &parseError{Code: apiErr.Code, Message: apiErr.Message}
	if apiErr.Code == types.ErrProviderError || apiErr.Code == types.ErrUpstreamError {
		pe.UpstreamStatus = apiErr.HTTPStatus
	}
	return pe
}

// writeResults 逐行写出 JSON, 返回失败的文件数. 某个结果无法编码时该行改为错误, 不影响后续文件.
func writeResults(w io.Writer, results []parseResult) (int, error) {
	failed := 0
	for _, r := range results {
		line, err := json.Marshal(r)
		if err != nil {
			r = parseResult{File: r.File, Error: &parseError{
				Code:    types.ErrInternalError,
				Message: "failed to encode result: " + err.Error(),
			}}
			if line, err = json.Marshal(r); err != nil {
				return failed, err
			}
		}
		if r.Error != nil {
			failed++
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
