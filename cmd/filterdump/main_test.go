package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunDumpsTree(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"--schema", "testdata/schema.yaml",
		"--entity-set", "People",
		"geo.distance(Home, Office) lt 0.5",
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	dump := out.String()
	for _, want := range []string{
		"FilterQueryOption",
		"BinaryOperatorNode",
		"SingleValueFunctionCallNode",
		"geo.distance",
		"Edm.GeographyPoint[SRID=4326]",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}

func TestRunReportsParseErrors(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"--schema", "testdata/schema.yaml",
		"--entity-set", "People",
		"Home lt Office",
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}
