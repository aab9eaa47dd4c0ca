package cache

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ErrMissingEnv indicates a ${VAR} reference to an unset environment variable.
var ErrMissingEnv = errors.New("cache: missing required environment variables")

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv returns a copy of c with ${VAR} references in Addr, Password and
// Prefix replaced from the environment. Only the braced form is expanded, so
// a literal '$' elsewhere in a password survives; "$$" also yields '$'.
// A reference to an unset variable fails with ErrMissingEnv.
func (c RedisConfig) ExpandEnv() (RedisConfig, error) {
	var err error
	if c.Addr, err = expandEnvStrict(c.Addr); err != nil {
		return RedisConfig{}, err
	}
	if c.Password, err = expandEnvStrict(c.Password); err != nil {
		return RedisConfig{}, err
	}
	if c.Prefix, err = expandEnvStrict(c.Prefix); err != nil {
		return RedisConfig{}, err
	}
	return c, nil
}

func expandEnvStrict(s string) (string, error) {
	const dollar = "\x00LEAGUECACHE_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollar)

	var missing []string
	s = envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		key := envRefPattern.FindStringSubmatch(ref)[1]
		v, ok := os.LookupEnv(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return strings.ReplaceAll(s, dollar, "$"), nil
}
