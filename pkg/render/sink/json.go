package sink

import "github.com/matzehuels/wordcloud/pkg/layout"

// RenderJSON exports the layout document.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return layout.Marshal(l)
}
