package main

import (
	"fmt"

	"github.com/ninefold/debase/internal/matcher"
)

// buildMatcher assembles a Matcher from the persistent --config and
// --pattern flags: the check --file value (if any) is installed first
// so {this.*} segments resolve against it while patterns are lexed,
// then the config (if any) loads, then every --pattern value is added,
// bound to ctor, dtor, or both depending on --ctor/--dtor.
func buildMatcher() (*matcher.Matcher, []string, error) {
	m := matcher.New(permissive)
	if checkFile != "" {
		m.SetFilename(checkFile)
	}

	var files []string
	if configPath != "" {
		warnings, err := m.LoadConfig(configPath, &files)
		for _, w := range warnings {
			fmt.Fprintf(output, "warning: %v\n", w)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	both := !ctorOnly && !dtorOnly
	for _, p := range patterns {
		var err error
		switch {
		case both:
			if err = m.AddCtorPattern(p); err == nil {
				err = m.AddDtorPattern(p)
			}
		case ctorOnly:
			err = m.AddCtorPattern(p)
		case dtorOnly:
			err = m.AddDtorPattern(p)
		}
		if err != nil {
			if permissive {
				fmt.Fprintf(output, "warning: skipping pattern %q: %v\n", p, err)
				continue
			}
			return nil, nil, err
		}
	}

	return m, files, nil
}
