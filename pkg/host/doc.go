// Package host is the decoration host: it applies each declared member's
// decorators exactly once and installs the resulting descriptors on an owner.
//
// A Class collects declarations, decorates them once when built, and shares
// the decorated members among all its instances; each instance is an Object
// with its own memo slots. Static declarations are installed on the class's
// own static Object. NewObject builds a standalone object literal whose
// owner is the object itself.
//
// Members still in data kind after decoration are normalized on install, so
// every installed member is read and written through accessors. Memo slots
// never appear among an object's keys.
package host
