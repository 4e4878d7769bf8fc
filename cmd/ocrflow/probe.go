package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/BaSui01/ocrflow/api/handlers"
)

// runHealth 供容器 HEALTHCHECK 使用. 默认只探测存活, --ready 时检查依赖并列出失败项.
func runHealth(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "http://localhost:8080", "Server base URL")
	ready := fs.Bool("ready", false, "Check /ready instead of /health")
	timeout := fs.Duration("timeout", 5*time.Second, "Request timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := "/health"
	if *ready {
		path = "/ready"
	}
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	status, err := probe(ctx, strings.TrimRight(*addr, "/")+path)
	if err != nil {
		fmt.Fprintf(stderr, "health: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, status)
	return 0
}

// probe 返回服务报告的状态. 非 200 时把失败的检查项放进错误信息.
func probe(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body handlers.HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: undecodable body: %w", resp.Status, err)
	}
	if resp.StatusCode == http.StatusOK {
		return body.Status, nil
	}

	var failed []string
	for name, check := range body.Checks {
		if check.Status != "pass" {
			failed = append(failed, fmt.Sprintf("%s (%s)", name, check.Message))
		}
	}
	sort.Strings(failed)
	return "", fmt.Errorf("%s: %s %s", resp.Status, body.Status, strings.Join(failed, ", "))
}
