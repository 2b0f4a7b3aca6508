package config

import (
	"net/url"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Rustdoc == "" {
		return errors.ConfigError("rustdoc binary must not be empty").WithContext("field", "rustdoc").Build()
	}
	if c.Edition == "" {
		return errors.ConfigError("edition must not be empty").WithContext("field", "edition").Build()
	}
	for _, r := range c.Edition {
		if r < '0' || r > '9' {
			return errors.ConfigError("edition must be a year such as 2021").
				WithContext("field", "edition").
				WithContext("value", c.Edition).
				Build()
		}
	}

	u, err := url.Parse(c.DocURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigError("doc_url must be an absolute http(s) URL").
			WithContext("field", "doc_url").
			WithContext("value", c.DocURL).
			Build()
	}
	return nil
}
