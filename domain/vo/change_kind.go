package vo

type ChangeKind int

const (
	Unchanged  ChangeKind = 0
	Modified   ChangeKind = 1
	New        ChangeKind = 2
	Deleted    ChangeKind = 3
	Unreadable ChangeKind = 4
)

var changeKindNames = []string{"unchanged", "modified", "new", "deleted", "unreadable"}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return "unknown"
	}
	return changeKindNames[k]
}

func ParseChangeKind(s string) (ChangeKind, bool) {
	for i, name := range changeKindNames {
		if name == s {
			return ChangeKind(i), true
		}
	}
	return Unchanged, false
}
