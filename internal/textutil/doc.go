// Package textutil provides Unicode-aware text comparison helpers.
//
// Category matching in the catalog must treat "Итальянская" and
// "итальянская" (or "STRASSE" and "straße") as equal, which a byte-wise
// strings.ToLower comparison does not guarantee. The helpers here apply
// full Unicode case folding via golang.org/x/text/cases.
package textutil
