package notegrid

import (
	"fmt"
	"strings"
	"testing"
)

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := NewGrid(100, 26)
		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				g.writeCell(row, col, fmt.Sprintf("%d", (row+1)*(col+1)))
			}
		}
		g.Stabilize()
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	g := NewGrid(100, 1)
	g.writeCell(0, 0, "1")
	for row := 1; row < 100; row++ {
		g.writeCell(row, 0, fmt.Sprintf("=A%d+1", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Stabilize()
	}
}

func BenchmarkReverseDependencyChain(b *testing.B) {
	g := NewGrid(100, 1)
	for row := 0; row < 99; row++ {
		g.writeCell(row, 0, fmt.Sprintf("=A%d+1", row+2))
	}
	g.writeCell(99, 0, "1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Stabilize()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	g := NewGrid(500, 2)
	g.writeCell(0, 0, "100")
	for row := 1; row < 500; row++ {
		g.writeCell(row, 1, "=A1*2")
	}
	g.Stabilize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.SetCell(0, 0, fmt.Sprintf("%d", i))
	}
}

func BenchmarkCascadingUpdates(b *testing.B) {
	g := NewGrid(50, 10)
	for row := 0; row < 50; row++ {
		for col := 0; col < 10; col++ {
			if col == 0 {
				g.writeCell(row, col, fmt.Sprintf("%d", row+1))
			} else {
				g.writeCell(row, col, fmt.Sprintf("=%s*2", CellName(row, col-1)))
			}
		}
	}
	g.Stabilize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.SetCell(0, 0, fmt.Sprintf("%d", i%100))
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := NewGrid(1, 8)
		g.writeCell(0, 0, "=B1+C1")
		g.writeCell(0, 1, "=C1+D1")
		g.writeCell(0, 2, "=D1+E1")
		g.writeCell(0, 3, "=E1+F1")
		g.writeCell(0, 4, "=F1+G1")
		g.writeCell(0, 5, "=G1+H1")
		g.writeCell(0, 6, "=H1+A1")
		g.writeCell(0, 7, "=A1")
		g.Stabilize()
	}
}

func BenchmarkManySmallFormulas(b *testing.B) {
	g := NewGrid(100, 4)
	for row := 1; row <= 100; row++ {
		g.writeCell(row-1, 0, fmt.Sprintf("%d", row))
		g.writeCell(row-1, 1, fmt.Sprintf("=A%d*2", row))
		g.writeCell(row-1, 2, fmt.Sprintf("=B%d+A%d*(1+10%%)", row, row))
		g.writeCell(row-1, 3, fmt.Sprintf("=C%d/2", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Stabilize()
	}
}

func BenchmarkDirtyPropagation(b *testing.B) {
	size := 20
	g := NewGrid(size, size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			switch {
			case row == 0 && col == 0:
				g.writeCell(row, col, "1")
			case row == 0:
				g.writeCell(row, col, fmt.Sprintf("=%s+1", CellName(row, col-1)))
			case col == 0:
				g.writeCell(row, col, fmt.Sprintf("=%s+1", CellName(row-1, col)))
			default:
				g.writeCell(row, col, fmt.Sprintf("=%s+%s", CellName(row, col-1), CellName(row-1, col)))
			}
		}
	}
	g.Stabilize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.SetCell(0, 0, fmt.Sprintf("%d", i%100))
	}
}

func BenchmarkPasteBlock(b *testing.B) {
	var sb strings.Builder
	for row := 1; row <= 200; row++ {
		fmt.Fprintf(&sb, "item %d\t%d\t%d.5\t=B%d*C%d\n", row, row, row, row, row)
	}
	text := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := NewGrid(10, 4)
		if err := g.Paste(text, 0, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExportCSV(b *testing.B) {
	g := NewGrid(200, 4)
	for row := 1; row <= 200; row++ {
		g.writeCell(row-1, 0, fmt.Sprintf("item, %d", row))
		g.writeCell(row-1, 1, fmt.Sprintf("%d", row))
		g.writeCell(row-1, 2, `say "hi"`)
		g.writeCell(row-1, 3, fmt.Sprintf("=B%d*2", row))
	}
	g.Stabilize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.ExportCSV()
	}
}
