package qmath

/*
FindNullSpaceMod2 returns a basis of the solutions x of A.x = 0 (mod 2).
Each row of A is an integer whose bits, up to width, are the row entries;
each solution is encoded the same way.
*/
func FindNullSpaceMod2(rows []int, width int) []int {
	a := append([]int(nil), rows...)
	pivots := reducedRowEchelonForm(a, width)
	return specialSolutions(a, width, pivots)
}

/*
reducedRowEchelonForm reduces a in place, scanning columns from the high
bit down, and returns the pivot column of each pivot row.
*/
func reducedRowEchelonForm(a []int, width int) []int {
	var pivots []int
	row := 0
	for col := width - 1; col >= 0 && row < len(a); col-- {
		makePivot(a, col, row)
		mask := 1 << uint(col)
		if a[row]&mask == 0 {
			continue
		}
		pivots = append(pivots, col)
		for r := range a {
			if r != row && a[r]&mask != 0 {
				a[r] ^= a[row]
			}
		}
		row++
	}
	return pivots
}

// makePivot swaps a row with bit col set into position row, if there is one.
func makePivot(a []int, col, row int) {
	mask := 1 << uint(col)
	if a[row]&mask != 0 {
		return
	}
	for r := row + 1; r < len(a); r++ {
		if a[r]&mask != 0 {
			a[row], a[r] = a[r], a[row]
			return
		}
	}
}

func specialSolutions(a []int, width int, pivots []int) []int {
	var results []int
	pivot := 0
	for col := width - 1; col >= 0; col-- {
		if pivot < len(pivots) && pivots[pivot] == col {
			pivot++
			continue
		}
		mask := 1 << uint(col)
		solution := mask
		for r := 0; r < pivot; r++ {
			if a[r]&mask != 0 {
				solution |= 1 << uint(pivots[r])
			}
		}
		results = append(results, solution)
	}
	return results
}
