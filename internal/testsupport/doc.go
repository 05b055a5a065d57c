// Package testsupport builds temp-directory configs and seeded data files for
// command and integration tests.
package testsupport
