package main

import (
	"strings"
	"testing"
)

func TestRenderPage(t *testing.T) {
	got := renderPage(htmlPage, "play.example.org", "2022")
	if !strings.Contains(got, "ssh -t -p 2022 play.example.org") {
		t.Error("connection command not filled in")
	}
	if strings.Contains(got, "{{") {
		t.Error("unreplaced placeholder left in page")
	}
}
