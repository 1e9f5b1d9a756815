package anki

import "strconv"

// noteModelID identifies the note model inside the collection. Fixed so
// that packages from different runs share the same model and merge
// cleanly on import.
const noteModelID = 1607392319

// noteModelName is the display name of the note model.
const noteModelName = "Concurso Básico"

// noteFields is the ordered field list of the note model. The order is
// part of the package contract: note field values are written in this
// order.
var noteFields = []string{"Pergunta", "Resposta", "Assunto", "Disciplina", "Fonte"}

// Card templates and styling of the note model.
const (
	questionFormat = `<div class="card question">` +
		`<div class="discipline">{{Disciplina}}</div>` +
		`<div class="topic">{{Assunto}}</div>` +
		`<div class="question">{{Pergunta}}</div>` +
		`</div>`

	answerFormat = `<div class="card">` +
		`<div class="discipline">{{Disciplina}}</div>` +
		`<div class="topic">{{Assunto}}</div>` +
		`<div class="question">{{Pergunta}}</div>` +
		`<hr id="answer">` +
		`<div class="answer">{{Resposta}}</div>` +
		`<div class="source"><small>Fonte: {{Fonte}}</small></div>` +
		`</div>`

	modelCSS = `.card { font-family: Arial, sans-serif; font-size: 16px; text-align: left; margin: 20px; }` +
		`.question { font-weight: bold; margin-bottom: 15px; }` +
		`.discipline { font-size: 14px; color: #666; margin-bottom: 5px; }` +
		`.topic { font-size: 14px; color: #444; margin-bottom: 15px; font-style: italic; }` +
		`.answer { margin-top: 15px; }` +
		`.source { margin-top: 20px; color: #888; }`
)

// Anki's default LaTeX wrapping, carried verbatim in the model JSON.
const (
	latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
		"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
		"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost = "\\end{document}"
)

// modelsJSON builds the collection's models map: a single note model
// keyed by its identifier.
func modelsJSON(mod int64) map[string]any {
	fields := make([]map[string]any, 0, len(noteFields))
	for i, name := range noteFields {
		fields = append(fields, map[string]any{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Liberation Sans",
			"size":   20,
			"media":  []any{},
		})
	}

	model := map[string]any{
		"id":    noteModelID,
		"name":  noteModelName,
		"type":  0,
		"mod":   mod,
		"usn":   0,
		"sortf": 0,
		"did":   defaultDeckID,
		"tmpls": []map[string]any{
			{
				"name":  "Card",
				"ord":   0,
				"qfmt":  questionFormat,
				"afmt":  answerFormat,
				"bqfmt": "",
				"bafmt": "",
				"did":   nil,
			},
		},
		"flds":      fields,
		"css":       modelCSS,
		"latexPre":  latexPre,
		"latexPost": latexPost,
		"req":       []any{[]any{0, "all", []any{0}}},
		"tags":      []any{},
		"vers":      []any{},
	}

	return map[string]any{
		strconv.Itoa(noteModelID): model,
	}
}

// decksJSON builds the collection's decks map: Anki's mandatory default
// deck plus one entry per sub-deck.
func decksJSON(decks []Deck, mod int64) map[string]any {
	entries := map[string]any{
		strconv.FormatInt(defaultDeckID, 10): deckEntry(defaultDeckID, "Default", mod),
	}
	for _, deck := range decks {
		entries[strconv.FormatInt(deck.ID, 10)] = deckEntry(deck.ID, deck.Name, mod)
	}
	return entries
}

func deckEntry(id int64, name string, mod int64) map[string]any {
	return map[string]any{
		"id":               id,
		"name":             name,
		"mod":              mod,
		"usn":              0,
		"desc":             "",
		"dyn":              0,
		"conf":             1,
		"collapsed":        false,
		"browserCollapsed": false,
		"extendNew":        0,
		"extendRev":        0,
		"newToday":         []any{0, 0},
		"revToday":         []any{0, 0},
		"lrnToday":         []any{0, 0},
		"timeToday":        []any{0, 0},
	}
}

// confJSON builds the collection's configuration blob.
func confJSON() map[string]any {
	return map[string]any{
		"activeDecks":   []any{defaultDeckID},
		"curDeck":       defaultDeckID,
		"curModel":      strconv.Itoa(noteModelID),
		"newSpread":     0,
		"collapseTime":  1200,
		"timeLim":       0,
		"estTimes":      true,
		"dueCounts":     true,
		"nextPos":       1,
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"dayLearnFirst": false,
	}
}

// dconfJSON builds the default deck-options group.
func dconfJSON(mod int64) map[string]any {
	return map[string]any{
		"1": map[string]any{
			"id":       1,
			"name":     "Default",
			"mod":      mod,
			"usn":      0,
			"autoplay": true,
			"dyn":      false,
			"maxTaken": 60,
			"replayq":  true,
			"timer":    0,
			"new": map[string]any{
				"bury":          true,
				"delays":        []any{1, 10},
				"initialFactor": 2500,
				"ints":          []any{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"rev": map[string]any{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
			"lapse": map[string]any{
				"delays":      []any{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
		},
	}
}
