// Package fileutil holds small filesystem helpers shared by the stores.
package fileutil
