package observability

import (
	"context"
	"testing"
)

func TestWithBuildID(t *testing.T) {
	ctx := context.Background()
	ctx = WithBuildID(ctx, "build-123")

	lc := GetContext(ctx)
	if lc.BuildID != "build-123" {
		t.Errorf("expected build-123, got %s", lc.BuildID)
	}
}

func TestWithStage(t *testing.T) {
	ctx := context.Background()
	ctx = WithStage(ctx, "render")

	lc := GetContext(ctx)
	if lc.Stage != "render" {
		t.Errorf("expected render, got %s", lc.Stage)
	}
}

func TestWithPost(t *testing.T) {
	ctx := context.Background()
	ctx = WithPost(ctx, "posts/kindle-clippings.md")

	lc := GetContext(ctx)
	if lc.Post != "posts/kindle-clippings.md" {
		t.Errorf("expected posts/kindle-clippings.md, got %s", lc.Post)
	}
}

func TestContextValues_Accumulate(t *testing.T) {
	ctx := context.Background()
	ctx = WithBuildID(ctx, "build-1")
	ctx = WithStage(ctx, "layouts")

	lc := GetContext(ctx)
	if lc.BuildID != "build-1" || lc.Stage != "layouts" {
		t.Errorf("expected both fields set, got %+v", lc)
	}
}

func TestGetContext_Empty(t *testing.T) {
	lc := GetContext(context.Background())
	if lc.BuildID != "" || lc.Stage != "" || lc.Post != "" {
		t.Errorf("expected empty context, got %+v", lc)
	}
}
