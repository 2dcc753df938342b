package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeMeta_AllKeys(t *testing.T) {
	meta, err := DecodeMeta([]byte(`title: Parsing Kindle Clippings
date: 2021-03-14
tags: [python, parsing]
layout: post
description: Turning My Clippings.txt into something useful
`))
	require.NoError(t, err)
	require.Equal(t, "Parsing Kindle Clippings", meta.Title)
	require.Equal(t, time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC), meta.Date)
	require.Equal(t, []string{"python", "parsing"}, meta.Tags)
	require.Equal(t, "post", meta.Layout)
	require.False(t, meta.Draft)
}

func TestDecodeMeta_QuotedDateString(t *testing.T) {
	meta, err := DecodeMeta([]byte(`date: "2022-07-01"`))
	require.NoError(t, err)
	require.Equal(t, 2022, meta.Date.Year())
	require.Equal(t, time.July, meta.Date.Month())
}

func TestDecodeMeta_SingleTagScalar(t *testing.T) {
	meta, err := DecodeMeta([]byte(`tags: golang`))
	require.NoError(t, err)
	require.Equal(t, []string{"golang"}, meta.Tags)
}

func TestDecodeMeta_DuplicateTags_AreDeduplicated(t *testing.T) {
	meta, err := DecodeMeta([]byte("tags:\n  - go\n  - ci\n  - go\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"go", "ci"}, meta.Tags)
}

func TestDecodeMeta_BadDate_ReturnsError(t *testing.T) {
	_, err := DecodeMeta([]byte(`date: "next tuesday"`))
	require.Error(t, err)
}

func TestDecodeMeta_Empty_ReturnsZeroMeta(t *testing.T) {
	meta, err := DecodeMeta(nil)
	require.NoError(t, err)
	require.Empty(t, meta.Title)
	require.True(t, meta.Date.IsZero())
	require.Nil(t, meta.Tags)
}
