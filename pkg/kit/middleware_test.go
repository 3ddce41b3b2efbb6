package kit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mk := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				calls = append(calls, name)
				return next(ctx, req)
			}
		}
	}

	e := Chain(mk("a"), mk("b"), mk("c"))(func(context.Context, any) (any, error) {
		calls = append(calls, "endpoint")
		return "ok", nil
	})

	resp, err := e(context.Background(), nil)
	if err != nil || resp != "ok" {
		t.Fatalf("endpoint: %v, %v", resp, err)
	}
	want := "a b c endpoint"
	if got := fmt.Sprint(calls[0], " ", calls[1], " ", calls[2], " ", calls[3]); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sentinel := errors.New("boom")

	e := Logging(logger, "test")(func(context.Context, any) (any, error) {
		return nil, sentinel
	})

	if _, err := e(context.Background(), nil); !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}
}

func TestRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := Recover(logger)(func(context.Context, any) (any, error) {
		panic("kaboom")
	})

	_, err := e(context.Background(), nil)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PanicError", err)
	}
	if pe.Value != "kaboom" {
		t.Errorf("panic value = %v", pe.Value)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if GetLang(ctx) != "fr" {
		t.Errorf("default lang = %q, want fr", GetLang(ctx))
	}
	if GetTransport(ctx) != "http" {
		t.Errorf("default transport = %q, want http", GetTransport(ctx))
	}

	ctx = WithLang(ctx, "es")
	ctx = WithTransport(ctx, "mcp_quic")
	ctx = WithSessionID(ctx, "s1")
	ctx = WithRequestID(ctx, "r1")

	if GetLang(ctx) != "es" || GetTransport(ctx) != "mcp_quic" {
		t.Error("lang/transport round trip failed")
	}
	if GetSessionID(ctx) != "s1" || GetRequestID(ctx) != "r1" {
		t.Error("session/request id round trip failed")
	}
}
