package marionette

import "fmt"

// Skeleton describes a joint hierarchy: parent indices, joint names, and the
// bind/rest pose. It is immutable after construction and may be shared
// read-only by any number of controllers. Skeletons are normally produced by
// an asset loader; NewSkeleton exists so tests and procedural rigs can build
// one directly.
type Skeleton struct {
	parents []int
	names   []string
	rest    Pose
}

// NewSkeleton builds a skeleton from parent indices, joint names, and a rest
// pose, all indexed by joint. A parent index of -1 marks a root; every other
// parent must precede its child so a single forward pass walks the hierarchy.
func NewSkeleton(parents []int, names []string, rest Pose) (*Skeleton, error) {
	n := len(parents)
	if n == 0 {
		return nil, fmt.Errorf("marionette: skeleton has no joints")
	}
	if len(names) != n || len(rest) != n {
		return nil, fmt.Errorf("marionette: skeleton joint counts disagree: %d parents, %d names, %d rest joints",
			n, len(names), len(rest))
	}
	for i, p := range parents {
		if p == -1 {
			continue
		}
		if p < 0 || p >= i {
			return nil, fmt.Errorf("marionette: joint %d has invalid parent %d (parents must precede children)", i, p)
		}
	}
	s := &Skeleton{
		parents: append([]int(nil), parents...),
		names:   append([]string(nil), names...),
		rest:    NewPose(n),
	}
	s.rest.CopyFrom(rest)
	return s, nil
}

// NumJoints returns the number of joints in the skeleton.
func (s *Skeleton) NumJoints() int {
	return len(s.parents)
}

// JointGroups returns the number of 4-wide SoA joint batches a structure-of-
// arrays sampling job processes for this skeleton (ceil(NumJoints/4)).
func (s *Skeleton) JointGroups() int {
	return (len(s.parents) + 3) / 4
}

// Parent returns the parent index of joint i, or -1 for roots.
func (s *Skeleton) Parent(i int) int {
	return s.parents[i]
}

// JointName returns the name of joint i.
func (s *Skeleton) JointName(i int) string {
	return s.names[i]
}

// JointIndex returns the index of the named joint, or -1 if absent.
func (s *Skeleton) JointIndex(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}

// RestPose returns the skeleton's bind/rest pose. Callers must not modify
// the returned buffer.
func (s *Skeleton) RestPose() Pose {
	return s.rest
}
