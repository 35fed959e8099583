package locker

// SelectVersion exposes selectVersion for tests.
var SelectVersion = selectVersion
