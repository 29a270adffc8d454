// Package sharefs exposes an SMB share as a small set of synchronous,
// path-addressed file-system operations.
//
// A Conn owns one authenticated session bound to a \\host\share root.
// Callers address objects with share-relative paths ("reports/q1.csv" or
// `reports\q1.csv`); the Conn resolves them, serializes every protocol
// request behind a mutex, and translates NT_STATUS outcomes into ErrorCode
// values.
//
//	conn, err := sharefs.Connect(ctx, gosmb2.NewDialer(), `\\files\docs`, "alice", pw)
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := conn.MkdirAll(ctx, "reports/2024"); err != nil {
//		return err
//	}
//	err = conn.WriteFile(ctx, "reports/2024/q1.csv", data)
//
// Several operations probe the kind of a path with a full open before acting
// on it. The gap between probe and action is not protected against
// concurrent changes made by other clients of the share.
package sharefs
