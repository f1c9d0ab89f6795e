package hostsim

import "testing"

func TestScoreboard_MarkPendingThenReady(t *testing.T) {
	var s Scoreboard
	s.MarkReady(5)
	if !s.IsReady(5) {
		t.Fatalf("register 5 not ready after MarkReady")
	}
	s.MarkPending(5)
	if s.IsReady(5) {
		t.Fatalf("register 5 still ready after MarkPending")
	}
}

func TestComputeReadyBitmap_BranchesAlwaysReady(t *testing.T) {
	var win InstructionWindow
	win.Ops[3] = Operation{Valid: true, Opcode: OpBranch, PC: 0x1000}

	ready := ComputeReadyBitmap(&win, Scoreboard(0))
	if ready&(1<<3) == 0 {
		t.Errorf("branch op at slot 3 not marked ready")
	}
}

func TestComputeReadyBitmap_WaitsOnUnreadySources(t *testing.T) {
	var win InstructionWindow
	win.Ops[0] = Operation{Valid: true, Opcode: OpADD, Src1: 1, Src2: 2, Dest: 3}

	var sb Scoreboard
	sb.MarkReady(1)
	ready := ComputeReadyBitmap(&win, sb)
	if ready != 0 {
		t.Errorf("ready = %#x, want 0 (src2 not ready)", ready)
	}

	sb.MarkReady(2)
	ready = ComputeReadyBitmap(&win, sb)
	if ready&1 == 0 {
		t.Errorf("op not ready once both sources are marked ready")
	}
}

func TestBuildDependencyMatrix_OlderProducerYoungerConsumer(t *testing.T) {
	var win InstructionWindow
	win.Ops[10] = Operation{Valid: true, Opcode: OpADD, Src1: 1, Src2: 2, Dest: 5}
	win.Ops[2] = Operation{Valid: true, Opcode: OpADD, Src1: 5, Src2: 0, Dest: 6}

	matrix := BuildDependencyMatrix(&win)
	if matrix[10]&(1<<2) == 0 {
		t.Errorf("slot 2 not marked as depending on slot 10")
	}
	if matrix[2] != 0 {
		t.Errorf("younger op incorrectly marked as a producer")
	}
}

func TestBuildDependencyMatrix_IgnoresBranches(t *testing.T) {
	var win InstructionWindow
	win.Ops[10] = Operation{Valid: true, Opcode: OpBranch, PC: 0x2000}
	win.Ops[2] = Operation{Valid: true, Opcode: OpADD, Src1: 0, Src2: 0, Dest: 0}

	matrix := BuildDependencyMatrix(&win)
	if matrix[10] != 0 {
		t.Errorf("branch op produced a dependency row, want none")
	}
}

func TestSelectIssueBundle_PrefersHighPriorityTier(t *testing.T) {
	priority := PriorityClass{HighPriority: 1 << 5, LowPriority: 1 << 3}
	bundle := SelectIssueBundle(priority)
	if bundle.Valid&1 == 0 || bundle.Indices[0] != 5 {
		t.Errorf("bundle = %+v, want slot 5 selected first", bundle)
	}
}

func TestSelectIssueBundle_OldestFirstWithinTier(t *testing.T) {
	priority := PriorityClass{LowPriority: (1 << 3) | (1 << 20)}
	bundle := SelectIssueBundle(priority)
	if bundle.Indices[0] != 20 {
		t.Errorf("first selected = %d, want 20 (oldest/highest slot index)", bundle.Indices[0])
	}
}

func TestScheduler_DispatchFillsFirstFreeSlot(t *testing.T) {
	var s Scheduler
	slot, ok := s.Dispatch(Operation{Opcode: OpBranch, PC: 0x10})
	if !ok || slot != 0 {
		t.Fatalf("Dispatch = (%d, %v), want (0, true)", slot, ok)
	}
	if !s.Window.Ops[0].Valid {
		t.Errorf("slot 0 not marked valid after dispatch")
	}
}

func TestScheduler_RetireFreesSlot(t *testing.T) {
	var s Scheduler
	slot, _ := s.Dispatch(Operation{Opcode: OpBranch, PC: 0x10})
	s.Retire(slot)
	if s.Window.Ops[slot].Valid {
		t.Errorf("slot still valid after retire")
	}
}

func TestScheduler_DispatchFailsWhenWindowFull(t *testing.T) {
	var s Scheduler
	for i := 0; i < WindowSize; i++ {
		if _, ok := s.Dispatch(Operation{Opcode: OpBranch, PC: uint64(i)}); !ok {
			t.Fatalf("dispatch %d unexpectedly failed", i)
		}
	}
	if _, ok := s.Dispatch(Operation{Opcode: OpBranch, PC: 0xFF}); ok {
		t.Errorf("dispatch succeeded on a full window")
	}
}
