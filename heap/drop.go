package heap

import (
	"reflect"
	"sync"
	"unsafe"
)

// Dropper is implemented by values that need cleanup at the end of their
// life. Drop is called exactly once per value by the owner that finalizes
// it, and is responsible for everything the value owns.
type Dropper interface {
	Drop()
}

// Owner is a Dropper reached through a pointer that owns its target, such
// as a *box.Box. Drop glue follows pointers only when they are Owners, and
// skips owners that are no longer live.
type Owner interface {
	Dropper
	IsLive() bool
}

var (
	dropperType = reflect.TypeFor[Dropper]()
	ownerType   = reflect.TypeFor[Owner]()
	dropCache   sync.Map // reflect.Type -> bool
)

// DropInPlace finalizes the value at p without freeing its memory.
//
// A value whose type (or pointer type) implements Dropper has its Drop
// called and nothing else, unless it is also an Owner that is no longer live. Otherwise struct fields, array elements and the
// elements of slices up to their length are finalized in order. Non-nil
// pointers implementing Owner are dropped if still live. Maps, channels,
// functions, interfaces and other pointers are not followed.
func DropInPlace[T any](p *T) {
	if p == nil || !needsDrop(reflect.TypeFor[T]()) {
		return
	}
	dropValue(reflect.ValueOf(p).Elem())
}

// NeedsDrop reports whether finalizing a T can run any Drop method.
func NeedsDrop[T any]() bool { return needsDrop(reflect.TypeFor[T]()) }

func needsDrop(t reflect.Type) bool {
	if v, ok := dropCache.Load(t); ok {
		return v.(bool)
	}
	needs := computeNeedsDrop(t, make(map[reflect.Type]bool))
	dropCache.Store(t, needs)
	return needs
}

func computeNeedsDrop(t reflect.Type, visiting map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Pointer:
		return t.Implements(ownerType)
	}
	if t.Implements(dropperType) || reflect.PointerTo(t).Implements(dropperType) {
		return true
	}
	if visiting[t] {
		return false
	}
	visiting[t] = true
	switch t.Kind() {
	case reflect.Array:
		return t.Len() > 0 && computeNeedsDrop(t.Elem(), visiting)
	case reflect.Slice:
		return computeNeedsDrop(t.Elem(), visiting)
	case reflect.Struct:
		for i := range t.NumField() {
			if computeNeedsDrop(t.Field(i).Type, visiting) {
				return true
			}
		}
	}
	return false
}

// dropValue finalizes an addressable value.
func dropValue(v reflect.Value) {
	t := v.Type()
	if !needsDrop(t) {
		return
	}
	if t.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		if o := v.Interface().(Owner); o.IsLive() {
			o.Drop()
		}
		return
	}
	if d, ok := v.Addr().Interface().(Dropper); ok {
		// Structs embedding an owner inherit its IsLive; a nil or ended
		// embedded owner has nothing left to finalize.
		if o, ok := d.(Owner); ok && !o.IsLive() {
			return
		}
		d.Drop()
		return
	}
	switch t.Kind() {
	case reflect.Array, reflect.Slice:
		for i := range v.Len() {
			dropValue(v.Index(i))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			dropValue(accessible(v.Field(i)))
		}
	}
}

// accessible returns f with the read-only flag of unexported fields lifted,
// so their Drop methods can be called.
func accessible(f reflect.Value) reflect.Value {
	if f.CanInterface() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
