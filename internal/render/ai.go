package render

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// Nodes drawn per layer; larger layers are elided.
const maxLayerNodes = 10

func drawNeuralNetwork(c *ctx, el *schema.NeuralNetwork) error {
	w, h := c.w, c.h
	L := len(el.Layers)
	sp := w / float64(L+1)
	r := schema.Or(el.NodeRadius, 1.5)
	nodeCol := c.color(el.NodeColor, "primary")
	if c.base.Color != "" {
		nodeCol = c.accent("primary")
	}
	edgeCol := c.color(el.ConnectionColor, "dim")

	layerX := func(li int) float64 { return -w/2 + float64(li+1)*sp }
	nodeY := func(ni, n int) float64 { return -h/2 + float64(ni+1)*h/float64(n+1) }
	shown := func(li int) int { return min(el.Layers[li], maxLayerNodes) }

	if schema.BoolOr(el.ShowConnections, true) && L > 1 {
		for li := 0; li < L-1; li++ {
			a, err := c.item(li, L-1)
			if err != nil {
				return err
			}
			if a <= 0 {
				continue
			}
			n0, n1 := shown(li), shown(li+1)
			for i := 0; i < n0; i++ {
				for j := 0; j < n1; j++ {
					c.line(c.pt(layerX(li), nodeY(i, n0)), c.pt(layerX(li+1), nodeY(j, n1)), edgeCol, 0.5, a*0.3)
				}
			}
		}
	}
	return staggered(c, L, func(li int, a float64) {
		n := shown(li)
		for ni := 0; ni < n; ni++ {
			c.circle(layerX(li), nodeY(ni, n), r, nodeCol, c.color("text", "text"), 1, a)
		}
		if el.Layers[li] > n {
			c.text(layerX(li), -h/2, fmt.Sprintf("+%d", el.Layers[li]-n), 6, c.color("dim", "dim"), a)
		}
		if li < len(el.LayerLabels) {
			c.text(layerX(li), -h/2-2.5, el.LayerLabels[li], 7, c.color("dim", "dim"), a)
		}
	})
}

// SynthesizeWeights builds a deterministic attention matrix whose weights
// decay away from the diagonal. Every diagonal entry is the maximum of its
// row.
func SynthesizeWeights(rows, cols int) [][]float64 {
	w := make([][]float64, rows)
	for i := range w {
		w[i] = make([]float64, cols)
		for j := range w[i] {
			w[i][j] = 0.1 + 0.85*math.Exp(-0.9*math.Abs(float64(i-j)))
		}
	}
	return w
}

func drawHeatmap(c *ctx, el *schema.AttentionHeatmap) error {
	w, h := c.w, c.h
	xs, ys := el.TokensX, el.Rows()
	nx, ny := len(xs), len(ys)
	if nx == 0 || ny == 0 {
		return fmt.Errorf("heatmap needs tokens, got %dx%d", ny, nx)
	}
	weights := el.Weights
	if len(weights) == 0 {
		weights = SynthesizeWeights(ny, nx)
	}
	if len(weights) != ny {
		return fmt.Errorf("weights have %d rows, want %d", len(weights), ny)
	}
	for i := 0; i < ny; i++ {
		if len(weights[i]) != nx {
			return fmt.Errorf("weights row %d has %d columns, want %d", i, len(weights[i]), nx)
		}
	}

	gw, gh := 0.8*w, 0.8*h
	cw, ch := gw/float64(nx), gh/float64(ny)
	gx, gy := -gw/2+3, -gh/2
	fill := c.accent("accent")
	text := c.color("text", "text")

	if el.Title != "" {
		c.text(0, h/2+3, el.Title, 10, text, c.alpha, bold)
	}
	for j, tok := range xs {
		c.text(gx+float64(j)*cw+cw/2, gy+gh+1.5, clip(tok, 6), 8, text, c.alpha, valign(canvas.VAlignBottom))
	}
	for i, tok := range ys {
		c.text(gx-1.5, gy+float64(ny-1-i)*ch+ch/2, clip(tok, 6), 8, text, c.alpha, align(canvas.AlignRight))
	}

	return staggered(c, nx*ny, func(k int, a float64) {
		i, j := k/nx, k%nx
		v := weights[i][j]
		cx := gx + float64(j)*cw + 0.3
		cy := gy + float64(ny-1-i)*ch + 0.3
		c.bar(cx, cy, cw-0.6, ch-0.6, fill, v*a)
		if el.ShowValues && a > 0.5 {
			c.text(gx+float64(j)*cw+cw/2, gy+float64(ny-1-i)*ch+ch/2, fmt.Sprintf("%.2f", v), 6, text, a)
		}
	})
}

// TokenID returns a stable pseudo id for a token.
func TokenID(tok string) int {
	h := fnv.New32a()
	h.Write([]byte(tok))
	return int(h.Sum32() % 50000)
}

func drawTokenFlow(c *ctx, el *schema.TokenFlow) error {
	w, h := c.w, c.h
	tokens := el.TokenList()
	input := el.InputText
	if input == "" {
		input = fmt.Sprint(tokens)
	}
	c.box(-w/2+w/8, 0, w/4, h/2, c.color("code_bg", "code_bg"), c.color("dim", "dim"), 1, c.alpha)
	c.text(-w/2+w/8, 0, clip(input, 8), 8, c.color("text", "text"), c.alpha)
	c.arrow([]canvas.Point{c.pt(-w/4, 0), c.pt(-w/4+5, 0)}, c.color("dim", "dim"), 1.5, c.alpha, canvas.HeadTriangle)

	accent := c.accent("accent")
	showIDs := schema.BoolOr(el.ShowEmbeddings, true)
	return staggered(c, len(tokens), func(i int, a float64) {
		tx := -w/4 + 8 + float64(i)*8
		c.box(tx, 0, 6, 6, c.color("bg_light", "bg_light"), accent, 1, a)
		c.text(tx, 0, clip(tokens[i], 5), 7, accent, a)
		if showIDs {
			id := TokenID(tokens[i])
			if i < len(el.TokenIDs) {
				id = el.TokenIDs[i]
			}
			c.text(tx, -5, fmt.Sprint(id), 6, c.color("dim", "dim"), a, mono)
		}
	})
}

// comparisonRows returns the row labels, or the sorted keys of the first
// model when none are given.
func comparisonRows(el *schema.ModelComparison) []string {
	if len(el.Rows) > 0 || len(el.Models) == 0 {
		return el.Rows
	}
	rows := make([]string, 0, len(el.Models[0].Values))
	for k := range el.Models[0].Values {
		rows = append(rows, k)
	}
	sort.Strings(rows)
	return rows
}

func drawModelComparison(c *ctx, el *schema.ModelComparison) error {
	w, h := c.w, c.h
	models := el.Models
	rows := comparisonRows(el)
	n := len(models)
	colW := w / float64(n+1)
	rowH := h / (float64(len(rows)) + 1.5)
	dim := c.color("dim", "dim")

	for r, label := range rows {
		ry := h/2 - float64(r+2)*rowH
		c.text(-w/2+colW/2, ry, truncate(label, 12), 8, dim, c.alpha, bold)
		sy := h/2 - (float64(r)+1.2)*rowH
		c.line(c.pt(-w/2, sy), c.pt(w/2, sy), dim, 0.5, c.alpha*0.3)
	}
	return staggered(c, n, func(i int, a float64) {
		m := models[i]
		mx := -w/2 + (float64(i)+1.5)*colW
		col := c.color(m.Color, flowColors[(i+1)%len(flowColors)])
		c.text(mx, h/2-3, truncate(m.Name, 12), 9, col, a, bold)
		for r, label := range rows {
			ry := h/2 - float64(r+2)*rowH
			c.text(mx, ry, truncate(m.Value(label), 12), 8, c.color("text", "text"), a)
		}
	})
}
