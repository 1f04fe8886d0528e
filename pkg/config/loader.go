package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use a
// double underscore: DOTLINK_OUTPUT__FORMAT sets output.format.
const EnvPrefix = "DOTLINK_"

// ConfigFileNames are searched in the dotfiles root, first match wins
var ConfigFileNames = []string{
	"dotlink.toml",
	"dotlink.yaml",
	"dotlink.yml",
	".dotlink.toml",
	".dotlink.yaml",
	".dotlink.yml",
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// SourceRoot is searched for ConfigFileNames
	SourceRoot string

	// ConfigFile, when set, is loaded instead of searching SourceRoot
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("output.format")
	Overrides map[string]interface{}
}

// Load builds the effective configuration from, in order: embedded
// defaults, the dotfiles root config file, DOTLINK_* environment variables
// and flag overrides. The result is validated.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		log.Debug().Str("file", path).Msg("Loaded config file")
	}

	// 3. Environment
	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		// Empty means unset
		if value == "" {
			return "", nil
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", "."), value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("links", len(cfg.Links)).
		Bool("create_parents", cfg.CreateParents).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")
	return cfg, nil
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile).
				WithOSError(err)
		}
		return opts.ConfigFile, nil
	}
	if opts.SourceRoot == "" {
		return "", nil
	}
	for _, name := range ConfigFileNames {
		path := filepath.Join(opts.SourceRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	// A configured links list replaces the defaults wholesale
	if fk.Exists("links") {
		k.Delete("links")
	}
	if err := k.Merge(fk); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to merge config from %s", path)
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToLinksHookFunc(),
				stringToLinkSpecHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

var linkSpecType = reflect.TypeOf(LinkSpec{})

// stringToLinksHookFunc decodes "src=dst,src=dst" into a links list, the
// form DOTLINK_LINKS takes
func stringToLinksHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.SliceOf(linkSpecType) {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []LinkSpec{}, nil
		}
		var specs []LinkSpec
		for _, item := range strings.Split(raw, ",") {
			spec, err := parseLinkSpec(item)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil
	}
}

// stringToLinkSpecHookFunc decodes a single "src=dst" list element
func stringToLinkSpecHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != linkSpecType {
			return data, nil
		}
		return parseLinkSpec(data.(string))
	}
}

func parseLinkSpec(s string) (LinkSpec, error) {
	src, dst, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return LinkSpec{}, errors.Newf(errors.ErrConfigParse, "link %q is not in source=target form", s)
	}
	return LinkSpec{Source: strings.TrimSpace(src), Target: strings.TrimSpace(dst)}, nil
}
