package input

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/lixenwraith/wireview/terminal"
)

var (
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoQuitBinding = errors.New("no key bound to quit")
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// ApplyBindings overlays key name → action name bindings onto the table
// Action "none" unbinds the key. The table is left unchanged on error
func (kt *KeyTable) ApplyBindings(bindings map[string]string) error {
	keys := make(map[terminal.Key]Intent, len(kt.Keys))
	for k, v := range kt.Keys {
		keys[k] = v
	}
	runes := make(map[rune]Intent, len(kt.Runes))
	for r, v := range kt.Runes {
		runes[r] = v
	}

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, keyStr := range names {
		actionName := bindings[keyStr]
		intent, ok := IntentByName(strings.ToLower(actionName))
		if !ok {
			return errors.Wrapf(ErrUnknownAction, "key %q: %q", keyStr, actionName)
		}

		if k, ok := terminal.KeyByName(strings.ToLower(keyStr)); ok {
			if intent == IntentNone {
				delete(keys, k)
			} else {
				keys[k] = intent
			}
			continue
		}

		r, err := resolveRune(keyStr)
		if err != nil {
			return err
		}
		if intent == IntentNone {
			delete(runes, r)
		} else {
			runes[r] = intent
		}
	}

	if !hasIntent(keys, runes, IntentQuit) {
		return ErrNoQuitBinding
	}

	kt.Keys = keys
	kt.Runes = runes
	return nil
}

// resolveRune converts a config key string to a rune
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, errors.Wrapf(ErrUnknownKey, "%q", s)
}

func hasIntent(keys map[terminal.Key]Intent, runes map[rune]Intent, want Intent) bool {
	for _, v := range keys {
		if v == want {
			return true
		}
	}
	for _, v := range runes {
		if v == want {
			return true
		}
	}
	return false
}
