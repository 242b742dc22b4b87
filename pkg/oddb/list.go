// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package oddb

// FindInList returns the first object of list whose key or name is nameOrKey.
func FindInList(list []ObjectInfo, nameOrKey string) (ObjectInfo, bool) {
	for _, oi := range list {
		if oi.ID == nameOrKey || oi.Name == nameOrKey {
			return oi, true
		}
	}
	return ObjectInfo{}, false
}

// ValueFor returns one field (see ObjectInfo.Get) of the object of list named name.
func ValueFor(list []ObjectInfo, name, field string) (string, bool) {
	oi, ok := FindInList(list, name)
	if !ok {
		return "", false
	}
	return oi.Get(field)
}

// KeyForName returns the key of the object of list named name.
func KeyForName(list []ObjectInfo, name string) (string, bool) {
	return ValueFor(list, name, "ID")
}
