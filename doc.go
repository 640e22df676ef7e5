// Package webopt shrinks static web assets for deployment.
//
// Each file is minified with lightweight pattern rules, compressed at the
// maximum level of the chosen format and measured at every stage. The
// compressed artifact is written next to its source with the format suffix
// appended (index.html becomes index.html.gz).
//
// # Minifiers
//
// Three pure functions cover the supported content kinds:
//
//   - MinifyMarkup: drops <!-- --> comments, whitespace between tags and blank lines
//   - MinifyStylesheet: drops /* */ comments and whitespace around { } : ; ,
//   - MinifyScript: drops // and /* */ comments and whitespace around operators
//
// They are textual, not lexical. Whitespace inside <pre>, string literals and
// template literals is not protected, and a // inside a string is treated as
// a comment unless it directly follows a colon (so http://... survives).
// The parser engine (EngineParser) trades this parity for tdewolff/minify.
//
// # Quick Start
//
//	cfg := webopt.DefaultConfig()
//	cfg.Dir = "public"
//
//	batch, _ := webopt.NewBatch(webopt.DirFS(cfg.Dir), cfg, nil)
//	summary := batch.Run(context.Background(), webopt.DefaultEntries())
//	webopt.WriteText(os.Stdout, summary)
//
// # Formats
//
//   - Gzip (default): level 9, readable by every browser and server
//   - Brotli: level 11, best ratio for static content
//   - Zstd: level 22
//   - LZ4: level 9
//   - Snappy: framed stream, no levels
//
// Gzip artifacts carry no file name or timestamp, so equal input always
// produces identical bytes.
//
// # Errors
//
// Failures are reported per file as *FileError and never stop a batch. A
// missing source is skipped; read, minify, compress and write errors mark the
// file failed. Skipped and failed files do not count towards the totals.
package webopt
