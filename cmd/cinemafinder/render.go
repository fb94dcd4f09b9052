package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cinemamap/backend/internal/domain/entities"
)

// renderNearby prints the headline and the nearest cinemas table.
func renderNearby(w io.Writer, nearby *entities.Nearby, width int) {
	if !nearby.Found {
		fmt.Fprintln(w, nearby.Message)
		return
	}
	if nearby.Headline != "" {
		fmt.Fprintln(w, nearby.Headline)
	}
	if len(nearby.Rows) == 0 {
		return
	}

	// distance, attendance and type columns are fixed; the rest share what is left
	const fixed = 10 + 10 + 20 + 5
	free := width - fixed
	if free < 30 {
		free = 30
	}
	nameW, addrW, townW := free*2/5, free*2/5, free/5

	fmt.Fprintf(w, "%s %s %s %10s %10s  %s\n",
		pad("Nom", nameW), pad("Adresse", addrW), pad("Commune", townW), "Km", "Pers/séance", "Type")
	for _, row := range nearby.Rows {
		attendance := ""
		if row.AttendancePerShowing != nil {
			attendance = fmt.Sprintf("%d", *row.AttendancePerShowing)
		}
		fmt.Fprintf(w, "%s %s %s %10.2f %10s  %s\n",
			pad(row.Name, nameW), pad(row.Address, addrW), pad(row.Municipality, townW),
			row.DistanceKm, attendance, row.Type.Label())
	}
}

// renderDepartments prints one bar per department scaled to the terminal width.
func renderDepartments(w io.Writer, departments []entities.DepartmentCount, width int) {
	fmt.Fprintln(w, "Nombre de cinéma par département")
	highest := 0
	for _, d := range departments {
		if d.Count > highest {
			highest = d.Count
		}
	}
	if highest == 0 {
		return
	}

	barW := width - 12
	if barW < 10 {
		barW = 10
	}
	for _, d := range departments {
		n := d.Count * barW / highest
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(w, "%-4s %5d %s\n", d.Department, d.Count, strings.Repeat("#", n))
	}
}

// pad truncates or right-pads s to exactly n runes.
func pad(s string, n int) string {
	length := utf8.RuneCountInString(s)
	if length > n {
		if n <= 1 {
			return string([]rune(s)[:n])
		}
		return string([]rune(s)[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-length)
}
