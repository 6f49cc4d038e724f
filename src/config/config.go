// Package config holds the settings of the concordance command and loads
// them from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/hyperbolic-timechamber/concordance-go/src/concordance"
	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
	"github.com/hyperbolic-timechamber/concordance-go/src/report"
)

// DefaultSlots is the initial table size used when none is configured.
const DefaultSlots = 10

type Config struct {
	Slots      int      `yaml:"slots"`
	Hash       string   `yaml:"hash"`
	LoadFactor float64  `yaml:"load_factor"`
	MaxSlots   int      `yaml:"max_slots"`
	Workers    int      `yaml:"workers"`
	Lowercase  bool     `yaml:"lowercase"`
	Format     string   `yaml:"format"`
	Sort       string   `yaml:"sort"`
	Top        int      `yaml:"top"`
	Buckets    bool     `yaml:"buckets"`
	Remove     []string `yaml:"remove"`
	LogLevel   string   `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Slots:      DefaultSlots,
		Hash:       hashtable.Additive.String(),
		LoadFactor: hashtable.DefaultLoadFactor,
		MaxSlots:   hashtable.DefaultMaxSlots,
		Workers:    concordance.DefaultWorkers,
		Format:     string(report.Text),
		Sort:       string(report.TableOrder),
		LogLevel:   log.InfoLevel.String(),
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Slots <= 0 {
		return errors.Wrapf(hashtable.ErrInvalidArgument, "slots must be positive, got %d", c.Slots)
	}
	if c.MaxSlots < c.Slots {
		return errors.Wrapf(hashtable.ErrInvalidArgument, "max_slots %d is below slots %d", c.MaxSlots, c.Slots)
	}
	if !(c.LoadFactor > 0) {
		return errors.Wrapf(hashtable.ErrInvalidArgument, "load_factor must be positive, got %v", c.LoadFactor)
	}
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Top < 0 {
		return errors.Errorf("top must not be negative, got %d", c.Top)
	}
	if _, err := hashtable.ParseHashFunc(c.Hash); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := report.ParseOrder(c.Sort); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// TableOptions translates the config into hash table options. Validate
// must have succeeded first.
func (c *Config) TableOptions(logger log.FieldLogger) []hashtable.Option {
	hf, _ := hashtable.ParseHashFunc(c.Hash)
	return []hashtable.Option{
		hashtable.WithHashFunc(hf),
		hashtable.WithLoadFactor(c.LoadFactor),
		hashtable.WithMaxSlots(c.MaxSlots),
		hashtable.WithLogger(logger),
	}
}

func (c *Config) ReportOptions() report.Options {
	f, _ := report.ParseFormat(c.Format)
	o, _ := report.ParseOrder(c.Sort)
	return report.Options{
		Format:  f,
		Order:   o,
		Top:     c.Top,
		Buckets: c.Buckets,
	}
}
