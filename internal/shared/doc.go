// Package shared holds code used across packages that belongs to no single
// pipeline stage.
//
// The testutil subpackage provides:
//
//   - TransactionFixtures, which writes transaction logs for tests
//   - BufferedSlogHandler and NewTestLogger, which capture log records (FindRecord, AssertLogContains)
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    fixtures := testutil.NewTransactionFixtures(t.TempDir())
//	    path, err := fixtures.CreateTransactionLog("transactions.csv", fixtures.GetSampleRows())
//	    require.NoError(t, err)
//	    logger, handler := testutil.NewTestLogger(t)
//	    ...
//	}
package shared
