package grammar

var (
	cBlock        = []Delimiter{{Open: "/*", Close: "*/"}}
	htmlBlock     = []Delimiter{{Open: "<!--", Close: "-->"}}
	haskellBlock  = []Delimiter{{Open: "{-", Close: "-}"}}
	mlBlock       = []Delimiter{{Open: "(*", Close: "*)"}}
	mustacheBlock = []Delimiter{{Open: "{{!--", Close: "--}}"}, {Open: "{{!", Close: "}}"}}

	// quoteCharLiterals are '"' and '\"' for languages without a ' quote.
	quoteCharLiterals = []string{`'"'`, `'\"'`}
)

// cStyle covers the many languages sharing //, /* */ and backslash escapes.
func cStyle(id, name string, exts ...string) Grammar {
	return Grammar{
		ID:            id,
		Name:          name,
		Extensions:    exts,
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        []string{`"`, `'`},
		Escape:        '\\',
	}
}

// hashStyle covers scripting languages with # line comments only.
func hashStyle(id, name string, exts ...string) Grammar {
	return Grammar{
		ID:           id,
		Name:         name,
		Extensions:   exts,
		LineComments: []string{"#"},
		Quotes:       []string{`"`, `'`},
		Escape:       '\\',
	}
}

func builtinGrammars() []Grammar {
	javascript := cStyle("javascript", "JavaScript", ".js", ".mjs", ".cjs")
	javascript.Quotes = []string{`"`, `'`, "`"}
	jsx := javascript
	jsx.ID, jsx.Name, jsx.Extensions = "jsx", "JSX", []string{".jsx"}
	typescript := javascript
	typescript.ID, typescript.Name, typescript.Extensions = "typescript", "TypeScript", []string{".ts", ".mts", ".cts"}
	tsx := javascript
	tsx.ID, tsx.Name, tsx.Extensions = "tsx", "TSX", []string{".tsx"}

	golang := cStyle("go", "Go", ".go")
	golang.RawStrings = []Delimiter{{Open: "`", Close: "`"}}

	csharp := cStyle("csharp", "C#", ".cs")
	csharp.RawStrings = []Delimiter{{Open: `@"`, Close: `"`}}

	kotlin := cStyle("kotlin", "Kotlin", ".kt", ".kts")
	kotlin.NestedBlocks = true
	kotlin.RawStrings = []Delimiter{{Open: `"""`, Close: `"""`}}

	scala := cStyle("scala", "Scala", ".scala", ".sc")
	scala.NestedBlocks = true
	scala.RawStrings = []Delimiter{{Open: `"""`, Close: `"""`}}

	swift := cStyle("swift", "Swift", ".swift")
	swift.NestedBlocks = true
	swift.Quotes = []string{`"""`, `"`}

	dart := cStyle("dart", "Dart", ".dart")
	dart.NestedBlocks = true
	dart.Quotes = []string{`"""`, `'''`, `"`, `'`}

	groovy := cStyle("groovy", "Groovy", ".groovy", ".gradle")
	groovy.Quotes = []string{`"""`, `'''`, `"`, `'`}

	// Single quotes are left out: lifetimes ('a) would open a literal.
	rust := cStyle("rust", "Rust", ".rs")
	rust.NestedBlocks = true
	rust.Quotes = []string{`"`}
	rust.Literals = quoteCharLiterals
	rust.RawStrings = []Delimiter{
		{Open: `r##"`, Close: `"##`},
		{Open: `r#"`, Close: `"#`},
		{Open: `r"`, Close: `"`},
	}

	php := cStyle("php", "PHP", ".php", ".php5", ".phtml")
	php.LineComments = []string{"//", "#"}

	squirrel := cStyle("squirrel", "Squirrel", ".nut")
	squirrel.LineComments = []string{"#", "//"}

	css := cStyle("css", "CSS", ".css")
	css.LineComments = nil

	python := hashStyle("python", "Python", ".py", ".pyw", ".pyi")
	python.Quotes = []string{`"""`, `'''`, `"`, `'`}

	ruby := hashStyle("ruby", "Ruby", ".rb", ".rake", ".gemspec")
	ruby.Filenames = []string{"Rakefile", "Gemfile"}
	ruby.BlockComments = []Delimiter{{Open: "=begin", Close: "=end"}}

	elixir := hashStyle("elixir", "Elixir", ".ex", ".exs", ".eex", ".heex")
	elixir.Quotes = []string{`"""`, `"`, `'`}

	shell := hashStyle("shell", "Shell", ".sh", ".bash", ".zsh")

	toml := hashStyle("toml", "TOML", ".toml")
	toml.Quotes = []string{`"""`, `"`}
	toml.RawStrings = []Delimiter{{Open: `'''`, Close: `'''`}, {Open: `'`, Close: `'`}}

	return []Grammar{
		cStyle("c", "C", ".c", ".h"),
		cStyle("cpp", "C++", ".cc", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx"),
		cStyle("objc", "Objective-C", ".m", ".mm"),
		cStyle("java", "Java", ".java"),
		cStyle("actionscript", "ActionScript", ".as"),
		cStyle("haxe", "Haxe", ".hx"),
		cStyle("less", "Less", ".less"),
		cStyle("sass", "Sass", ".sass", ".scss"),
		cStyle("stylus", "Stylus", ".styl"),
		javascript, jsx, typescript, tsx,
		golang, csharp, kotlin, scala, swift, dart, groovy, rust, php, squirrel, css,
		python, ruby, elixir, shell, toml,
		hashStyle("perl", "Perl", ".pl", ".pm"),
		hashStyle("r", "R", ".r"),
		{
			ID:           "makefile",
			Name:         "Makefile",
			Extensions:   []string{".mk", ".mak"},
			Filenames:    []string{"Makefile", "makefile", "GNUmakefile"},
			LineComments: []string{"#"},
		},
		{
			ID:           "dockerfile",
			Name:         "Dockerfile",
			Extensions:   []string{".dockerfile"},
			Filenames:    []string{"Dockerfile", "Containerfile"},
			LineComments: []string{"#"},
		},
		{
			// Quotes are left out: apostrophes in plain scalars are common.
			ID:           "yaml",
			Name:         "YAML",
			Extensions:   []string{".yaml", ".yml"},
			LineComments: []string{"#"},
		},
		{
			// "####" is longer than "###", so banner lines stay line comments.
			ID:            "coffeescript",
			Name:          "CoffeeScript",
			Extensions:    []string{".coffee"},
			LineComments:  []string{"####", "#"},
			BlockComments: []Delimiter{{Open: "###", Close: "###"}},
			Quotes:        []string{`"""`, `'''`, `"`, `'`},
			Escape:        '\\',
		},
		{
			ID:            "lua",
			Name:          "Lua",
			Extensions:    []string{".lua"},
			LineComments:  []string{"--"},
			BlockComments: []Delimiter{
				{Open: "--[[", Close: "]]"},
				{Open: "--[=[", Close: "]=]"},
				{Open: "--[==[", Close: "]==]"},
			},
			Quotes:     []string{`"`, `'`},
			Escape:     '\\',
			RawStrings: []Delimiter{
				{Open: "[[", Close: "]]"},
				{Open: "[=[", Close: "]=]"},
				{Open: "[==[", Close: "]==]"},
			},
		},
		{
			ID:            "haskell",
			Name:          "Haskell",
			Extensions:    []string{".hs", ".lhs"},
			LineComments:  []string{"--"},
			BlockComments: haskellBlock,
			NestedBlocks:  true,
			Quotes:        []string{`"`},
			Escape:        '\\',
			Literals:      quoteCharLiterals,
		},
		{
			ID:            "elm",
			Name:          "Elm",
			Extensions:    []string{".elm"},
			LineComments:  []string{"--"},
			BlockComments: haskellBlock,
			NestedBlocks:  true,
			Quotes:        []string{`"""`, `"`},
			Escape:        '\\',
			Literals:      quoteCharLiterals,
		},
		{
			ID:           "erlang",
			Name:         "Erlang",
			Extensions:   []string{".erl", ".hrl"},
			LineComments: []string{"%"},
			Quotes:       []string{`"`},
			Escape:       '\\',
			Literals:     []string{`$\"`, `$"`},
		},
		{
			ID:            "ocaml",
			Name:          "OCaml",
			Extensions:    []string{".ml", ".mli"},
			BlockComments: mlBlock,
			NestedBlocks:  true,
			Quotes:        []string{`"`},
			Escape:        '\\',
			Literals:      quoteCharLiterals,
		},
		{
			ID:                 "pascal",
			Name:               "Pascal",
			Extensions:         []string{".pas", ".pp", ".dpr"},
			LineComments:       []string{"//"},
			BlockComments:      []Delimiter{{Open: "(*", Close: "*)"}, {Open: "{", Close: "}"}},
			Quotes:             []string{`'`},
			DoubledQuoteEscape: true,
		},
		{
			ID:                 "sql",
			Name:               "SQL",
			Extensions:         []string{".sql", ".ddl", ".dml", ".psql", ".pgsql", ".plpgsql"},
			LineComments:       []string{"--"},
			BlockComments:      cBlock,
			NestedBlocks:       true,
			Quotes:             []string{`'`, `"`},
			DoubledQuoteEscape: true,
			DollarQuotes:       true,
		},
		{
			ID:                 "vb",
			Name:               "Visual Basic",
			Extensions:         []string{".vb", ".vbs", ".bas"},
			LineComments:       []string{"'"},
			Quotes:             []string{`"`},
			DoubledQuoteEscape: true,
		},
		{
			ID:           "asm",
			Name:         "Assembly",
			Extensions:   []string{".asm", ".s"},
			LineComments: []string{";"},
		},
		{
			ID:           "jade",
			Name:         "Jade",
			Extensions:   []string{".jade", ".pug"},
			LineComments: []string{"//"},
		},
		{
			ID:            "html",
			Name:          "HTML",
			Extensions:    []string{".html", ".htm", ".xhtml", ".vue"},
			BlockComments: htmlBlock,
		},
		{
			ID:            "xml",
			Name:          "XML",
			Extensions:    []string{".xml", ".xsd", ".xsl", ".svg"},
			BlockComments: htmlBlock,
		},
		{
			ID:            "handlebars",
			Name:          "Handlebars",
			Extensions:    []string{".hbs", ".handlebars", ".mustache"},
			BlockComments: mustacheBlock,
		},
	}
}
