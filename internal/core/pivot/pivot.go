// Package pivot contains the pure logic for the day-of-week × hour grid.
// This is part of the Functional Core - no I/O, only pure functions.
package pivot

// Weekdays is the fixed row order of the grid, calendar order.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// HoursPerDay is the fixed column count of the grid.
const HoursPerDay = 24

// Cell is one grouped (day, hour) count from the store.
type Cell struct {
	Day   string
	Hour  int
	Count int
}

// DayHourGrid pivots grouped cells into a dense 7×24 grid: rows follow
// Weekdays, columns are hours 0–23, and pairs absent from the input are 0.
// Cells with an unrecognized day label or an out-of-range hour are ignored.
func DayHourGrid(cells []Cell) [][]int {
	rowIndex := make(map[string]int, len(Weekdays))
	for i, d := range Weekdays {
		rowIndex[d] = i
	}

	grid := make([][]int, len(Weekdays))
	for i := range grid {
		grid[i] = make([]int, HoursPerDay)
	}

	for _, c := range cells {
		row, ok := rowIndex[c.Day]
		if !ok || c.Hour < 0 || c.Hour >= HoursPerDay {
			continue
		}
		grid[row][c.Hour] += c.Count
	}
	return grid
}

// Max returns the largest value in the grid, 0 for an all-zero grid.
func Max(grid [][]int) int {
	max := 0
	for _, row := range grid {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}
