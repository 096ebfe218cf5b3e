package web

import "embed"

// TemplatesFS embeds the server-rendered HTML pages.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds stylesheets and scripts.
//
//go:embed static/*
var StaticFS embed.FS
