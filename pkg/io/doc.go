// Package io reads and writes symbol dictionaries and seal documents as JSON.
//
// # Dictionary Format
//
// A dictionary has two top-level objects. "mapping" holds one shape tree per
// syllable; "refs" holds the path geometry those trees point at:
//
//	{
//	  "mapping": {
//	    "zod": {
//	      "tag": "g",
//	      "meta": {"rotate": 90},
//	      "children": [
//	        {"tag": "path", "meta": {"style": {"fill": "FG"}}, "attr": {"d": "c0"}}
//	      ]
//	    }
//	  },
//	  "refs": {"c0": "M0 0H128V128H0Z"}
//	}
//
// Path nodes name a refs key in their "d" attribute. Style roles are "FG",
// "BG", "TC" and "NO"; symbols are drawn on a 128×128 unit square.
//
// # Import
//
// Use [ImportDictionary] to read a dictionary from a file path, or
// [ReadDictionary] to read from any io.Reader. Both reject malformed JSON
// and syllable keys that are not three lowercase letters. [Validate] goes
// further and reports dangling path references up front instead of at
// render time.
//
// [LoadDictionary] also accepts an http(s) URL, fetched by a [Fetcher] that
// retries network failures and 5xx responses with backoff.
//
// # Export
//
// [WriteDocument] and [ExportDocument] write a poured document tree in the
// same node format. [WriteDictionary] round-trips a dictionary.
package io
