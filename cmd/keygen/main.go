// Command keygen creates a report API key and prints the hash to configure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jirareport/worklog-report/internal/auth"
)

type output struct {
	Key       string `json:"key"`
	KeyPrefix string `json:"key_prefix"`
	Env       string `json:"env"`
	Hash      string `json:"report_api_key_hash"`
}

func main() {
	var (
		env    = flag.String("env", auth.EnvLive, "Key environment: live or test")
		format = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if err := run(os.Stdout, *env, *format); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(w io.Writer, env, format string) error {
	if env != auth.EnvLive && env != auth.EnvTest {
		return fmt.Errorf("invalid env %q; use live or test", env)
	}

	format = strings.ToLower(format)
	if format != "plain" && format != "json" {
		return fmt.Errorf("invalid format; use plain or json")
	}

	generated, err := auth.GenerateAPIKey(env)
	if err != nil {
		return fmt.Errorf("generate api key: %w", err)
	}

	out := output{
		Key:       generated.Plaintext,
		KeyPrefix: generated.Prefix,
		Env:       env,
		Hash:      generated.Hash,
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	// Hash values contain '$', so quote them for shells and dotenv files.
	_, err = fmt.Fprintf(w, "API key (shown once): %s\nREPORT_API_KEY_HASH='%s'\n", out.Key, out.Hash)
	return err
}
