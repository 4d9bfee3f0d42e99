// Package types defines the Grid interface, row and column types, paging
// metadata, configuration, and the standard errors for the datagrid
// controller. Implementations live under internal/; callers outside the
// module use pkg/datagrid.
package types
