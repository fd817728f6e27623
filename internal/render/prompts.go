package render

import "fmt"

// systemPrompt instructs the vision model to reconstruct semantic HTML for
// one page image.
const systemPrompt = `You are a document reconstruction expert. You receive one rasterized page of a PDF document and must reproduce it as clean, semantic HTML.

CRITICAL OUTPUT FORMAT RULES:
- Output ONLY an HTML fragment, nothing else
- NEVER wrap the output in markdown codeblock delimiters (three backticks)
- NEVER include a doctype, <html>, <head> or <body> element - the fragment is embedded into a larger document
- The entire fragment MUST be wrapped in exactly one <section class="page"> ... </section> element

CONTENT RULES:
- Transcribe ALL visible text faithfully, preserving reading order
- Use semantic elements: <h1>-<h6> for headings, <p> for paragraphs, <ul>/<ol>/<li> for lists, <table>/<thead>/<tbody>/<tr>/<th>/<td> for tables, <figure>/<figcaption> for captioned graphics
- Preserve emphasis with <strong> and <em>
- Reproduce tables cell by cell; never flatten a table into paragraphs
- For regions you cannot read confidently, wrap the text in <span class="ocr-uncertain">...</span>
- Do NOT invent content that is not on the page
- Do NOT describe images; if a graphic carries no text, omit it
- Do NOT add meta-commentary such as "This page contains..." - output the reconstruction only

LAYOUT HELPER CLASSES:
- Multi-column or side-by-side regions may be expressed with the helper classes named in the user instruction
- Group logically distinct regions of the page into <div class="page-section"> blocks`

// userPromptForMode returns the per-request instruction carrying the layout
// hint for the selected CSS mode.
func userPromptForMode(mode string) string {
	var hint string
	switch mode {
	case "grid":
		hint = `Use the CSS grid helper classes "grid-2col" and "grid-3col" on wrapper <div> elements when the page shows two or three side-by-side regions.`
	case "columns":
		hint = `Use the CSS multi-column helper classes "columns-2" and "columns-3" on wrapper <div> elements when the page shows newspaper-style column flow.`
	default:
		hint = `Lay the content out as a single column. Do not use grid or column helper classes.`
	}

	return fmt.Sprintf(`Reconstruct this page as a semantic HTML fragment. Layout mode: %s. %s
Remember: one <section class="page"> wrapper, no codeblock fences, HTML only.`, mode, hint)
}
