// cmd/formcheck validates form-design JSON documents against the embedded
// CUE schema. It is the offline counterpart of the PUT /v1/forms/{id}
// endpoint: designers run it over a directory of designs before deploying.
//
// Usage:
//
//	formcheck design.json [more.json ...]
//	formcheck designs/
//
// Exit status is non-zero when any document fails validation.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("formcheck: ")

	if len(os.Args) < 2 {
		log.Fatal("usage: formcheck <design.json|dir> ...")
	}

	var files []string
	for _, arg := range os.Args[1:] {
		info, err := os.Stat(arg)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
			if err != nil {
				log.Fatalf("%v", err)
			}
			files = append(files, matches...)
			continue
		}
		files = append(files, arg)
	}
	if len(files) == 0 {
		log.Fatal("no design files found")
	}

	failed := 0
	for _, file := range files {
		if err := checkFile(file); err != nil {
			failed++
			fmt.Printf("FAIL  %s\n", file)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
			continue
		}
		fmt.Printf("ok    %s\n", file)
	}

	fmt.Printf("\n%d checked, %d failed\n", len(files), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func checkFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	design, err := schema.ParseDesign(raw)
	if err != nil {
		return err
	}

	// Structural checks beyond the schema: duplicate field keys confuse the
	// form-state store, and rules pointing at unknown fields never fire.
	keys := map[string]bool{}
	for _, layout := range design.ListLayout {
		for _, view := range layout.ListView {
			for _, input := range view.ListInput {
				key := input.FieldKey()
				if key == "" {
					return fmt.Errorf("view %s: input with empty field key", view.Code)
				}
				if keys[key] {
					return fmt.Errorf("view %s: duplicate field key %q", view.Code, key)
				}
				keys[key] = true
			}
		}
	}
	for _, rule := range design.ListRule {
		for _, tok := range strings.Split(rule.Config.ComponentResult, ";") {
			tok = strings.TrimSpace(tok)
			if tok != "" && !keys[tok] {
				return fmt.Errorf("rule %s targets unknown field %q", rule.Code, tok)
			}
		}
	}
	return nil
}
