package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/consts"
	"github.com/pseudomuto/definer/pkg/format"
	"github.com/pseudomuto/definer/pkg/parser"
	"gopkg.in/yaml.v3"
)

// Comment stripping modes.
const (
	CommentsLenient = "lenient"
	CommentsSafe    = "safe"
)

// Output encodings for parsed schemas.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

type (
	// Format holds the formatter settings used by `definer fmt`.
	Format struct {
		// UppercaseKeywords writes keywords in upper case. Unset means true.
		UppercaseKeywords *bool `yaml:"uppercase_keywords,omitempty"`

		// IndentSize is the clause indent for statements split over lines
		IndentSize int `yaml:"indent_size,omitempty"`

		// MaxLineLength is the longest single-line statement
		MaxLineLength int `yaml:"max_line_length,omitempty"`
	}

	// Config represents the project configuration, usually read from
	// definer.yaml.
	Config struct {
		// Entrypoint specifies the schema file compiled when a command is given
		// no file. Import directives are resolved relative to it.
		Entrypoint string `yaml:"entrypoint"`

		// Comments selects the comment stripper: lenient or safe
		Comments string `yaml:"comments"`

		// Output is the encoding used to print parsed schemas: yaml or json
		Output string `yaml:"output"`

		// Format contains formatter settings
		Format Format `yaml:"format"`
	}
)

// Default returns the configuration used when no project file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// Missing values are filled in from pkg/consts and format.Defaults. Unknown
// comment modes or output encodings are reported as errors.
//
// Example:
//
//	yamlData := `
//	entrypoint: db/main.surql
//	comments: safe
//	format:
//	  uppercase_keywords: false
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Schema entrypoint: %s\n", cfg.Entrypoint)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Find loads the configuration at path, or consts.ConfigFile when path is
// empty. A missing file is not an error: Default is returned so commands work
// without a project file.
func Find(path string) (*Config, error) {
	if path == "" {
		path = consts.ConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadConfigFile(path)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Comments {
	case CommentsLenient, CommentsSafe:
	default:
		return errors.Errorf("invalid comments mode %q: must be %s or %s", c.Comments, CommentsLenient, CommentsSafe)
	}

	switch c.Output {
	case OutputYAML, OutputJSON:
	default:
		return errors.Errorf("invalid output %q: must be %s or %s", c.Output, OutputYAML, OutputJSON)
	}

	if c.Format.IndentSize < 0 || c.Format.MaxLineLength < 0 {
		return errors.New("format sizes must not be negative")
	}

	return nil
}

// CommentStripper returns the comment stripper selected by Comments.
func (c *Config) CommentStripper() func(string) string {
	if c.Comments == CommentsSafe {
		return parser.StripCommentsSafe
	}
	return parser.StripComments
}

// ParserOptions returns the parser options matching the configuration.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithCommentStripper(c.CommentStripper())}
}

// FormatterOptions returns the formatter options matching the configuration.
func (c *Config) FormatterOptions() format.FormatterOptions {
	return format.FormatterOptions{
		IndentSize:        c.Format.IndentSize,
		MaxLineLength:     c.Format.MaxLineLength,
		UppercaseKeywords: c.Format.UppercaseKeywords == nil || *c.Format.UppercaseKeywords,
	}
}

// Formatter returns a formatter using FormatterOptions.
func (c *Config) Formatter() *format.Formatter {
	return format.New(c.FormatterOptions())
}

func (c *Config) applyDefaults() {
	if c.Entrypoint == "" {
		c.Entrypoint = consts.DefaultEntrypoint
	}
	if c.Comments == "" {
		c.Comments = consts.DefaultCommentMode
	}
	if c.Output == "" {
		c.Output = consts.DefaultOutput
	}
	if c.Format.IndentSize == 0 {
		c.Format.IndentSize = format.Defaults.IndentSize
	}
	if c.Format.MaxLineLength == 0 {
		c.Format.MaxLineLength = format.Defaults.MaxLineLength
	}
}
