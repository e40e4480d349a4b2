package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// lineWidth keeps LP rows under the 255 character limit most readers enforce.
const lineWidth = 200

// WriteLP writes m in CPLEX LP format. Rows are emitted in model order, so
// the output is deterministic.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ graceful coloring model: %d variables, %d constraints\n", len(m.vars), len(m.cons))
	fmt.Fprintf(bw, "\\ max degree %d, BigM1 %d, BigM2 %d\n", m.maxDegree, m.bigM1, m.bigM2)
	bw.WriteString("Minimize\n")
	fmt.Fprintf(bw, " obj: %s\n", m.vars[m.spanVar].Name)

	bw.WriteString("Subject To\n")
	for _, c := range m.cons {
		m.writeRow(bw, c)
	}

	bw.WriteString("Bounds\n")
	for _, v := range m.vars {
		if v.Kind == Binary {
			continue
		}
		if math.IsInf(v.Upper, 1) {
			fmt.Fprintf(bw, " %s >= %s\n", v.Name, num(v.Lower))
		} else {
			fmt.Fprintf(bw, " %s <= %s <= %s\n", num(v.Lower), v.Name, num(v.Upper))
		}
	}

	m.writeSection(bw, "General", Integer)
	m.writeSection(bw, "Binary", Binary)
	bw.WriteString("End\n")
	return bw.Flush()
}

func (m *Model) writeRow(bw *bufio.Writer, c Constraint) {
	var line strings.Builder
	line.WriteString(" ")
	line.WriteString(c.Name)
	line.WriteString(":")
	for _, t := range c.Terms {
		sign := "+"
		coef := t.Coef
		if coef < 0 {
			sign, coef = "-", -coef
		}
		line.WriteString(" ")
		line.WriteString(sign)
		line.WriteString(" ")
		if coef != 1 {
			line.WriteString(num(coef))
			line.WriteString(" ")
		}
		line.WriteString(m.vars[t.Var].Name)
	}
	fmt.Fprintf(bw, "%s %s %s\n", line.String(), c.Sense, num(c.RHS))
}

func (m *Model) writeSection(bw *bufio.Writer, title string, kind VarKind) {
	var names []string
	for _, v := range m.vars {
		if v.Kind == kind {
			names = append(names, v.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	bw.WriteString(title)
	bw.WriteString("\n")
	width := 0
	for _, name := range names {
		if width > 0 && width+len(name)+1 > lineWidth {
			bw.WriteString("\n")
			width = 0
		}
		bw.WriteString(" ")
		bw.WriteString(name)
		width += len(name) + 1
	}
	bw.WriteString("\n")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
