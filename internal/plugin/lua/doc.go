// Package lua runs user-supplied recognizer scripts in a sandboxed
// gopher-lua state.
//
// A script defines a global function recognize(text) that returns an array
// of matches. Each match is a table with 0-based, half-open byte offsets
// into text:
//
//	-- ticket.lua
//	priority = 450
//
//	function recognize(text)
//	    local out = {}
//	    local init = 1
//	    while true do
//	        local s, e = string.find(text, "JIRA%-%d+", init)
//	        if not s then break end
//	        out[#out + 1] = { start = s - 1, ["end"] = e, type = "jira" }
//	        init = e + 1
//	    end
//	    return out
//	end
//
// Optional fields are content (defaults to the matched text), type (the
// custom type, defaulting to the recognizer name) and data (a table of
// string pairs copied into the token metadata).
//
// Load the script and hand it to a pipeline:
//
//	rec, err := lua.LoadRecognizer("ticket.lua", lua.WithTimeout(100*time.Millisecond))
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//	p := tokenize.NewPipeline(tokenize.WithRecognizers(rec))
//
// # Sandbox
//
// Only the base, string, table and math libraries are opened. dofile,
// loadfile, load, loadstring and require are removed, and print writes to
// the recognizer's logger. Every call runs under a deadline; a script that
// overruns it is aborted with ErrExecutionTimeout.
package lua
