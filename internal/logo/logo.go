package logo

import "fmt"

func PrintLogo() {
	fmt.Println(`
Welcome to lemmagen!
====================
   running  ->  run
   ponies   ->  pony
   carried  ->  carry

lemmagen: a reductive rule lemmatizer for compact, language-specific rulesets.

Features:
	- Suffix-indexed rule store loaded from plain or gzip-compressed rule files
	- Lock-free lemmatization with atomic ruleset reloads
	- BadgerDB catalog of rulesets by language
	- REST API for loading rulesets and lemmatizing words or text

Endpoints:
	POST /load       {"path": "..."} or {"language": "..."}
	POST /lemmatize  {"words": [...]} or {"text": "..."}
	POST /unload
	GET  /status
	`)
}
