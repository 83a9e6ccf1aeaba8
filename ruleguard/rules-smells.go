package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guard-ifs returning the same value can merge with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Branching on response/error message text is fragile; use typed errors
	// (errors.As on *llm.StatusError, *document.ExtractError, etc.) instead.
	m.Match(`strings.Contains($err.Error(), $_)`).
		Report(`matching on error message text; branch on a typed error with errors.As instead`)

	// time.Sleep in request-path code ignores cancellation; use a
	// context-aware wait so handlers unwind when the client goes away.
	m.Match(`time.Sleep($_)`).
		Report(`time.Sleep ignores context cancellation; use a ctx-aware wait`)
}
