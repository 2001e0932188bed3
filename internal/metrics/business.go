package metrics

// IncrementTransitionCreated increments the transition creation counter
func (m *Metrics) IncrementTransitionCreated() {
	m.safeExecute("IncrementTransitionCreated", func() {
		m.TransitionCreatedTotal.Inc()
	})
}

// IncrementCustomFieldCreated increments the custom field creation counter
func (m *Metrics) IncrementCustomFieldCreated() {
	m.safeExecute("IncrementCustomFieldCreated", func() {
		m.CustomFieldCreatedTotal.Inc()
	})
}

// IncrementBindingsReplaced increments the binding replace counter
func (m *Metrics) IncrementBindingsReplaced() {
	m.safeExecute("IncrementBindingsReplaced", func() {
		m.BindingsReplacedTotal.Inc()
	})
}

// IncrementSnapshotExported increments the snapshot export counter
func (m *Metrics) IncrementSnapshotExported() {
	m.safeExecute("IncrementSnapshotExported", func() {
		m.SnapshotExportedTotal.Inc()
	})
}

// SetIssueTypesTotal sets the issue types gauge
func (m *Metrics) SetIssueTypesTotal(count int64) {
	m.safeExecute("SetIssueTypesTotal", func() {
		m.IssueTypesTotal.Set(float64(count))
	})
}

// SetCustomFieldsTotal sets the custom fields gauge
func (m *Metrics) SetCustomFieldsTotal(count int64) {
	m.safeExecute("SetCustomFieldsTotal", func() {
		m.CustomFieldsTotal.Set(float64(count))
	})
}

// SetWorkflowEdgesTotal sets the workflow edges gauge
func (m *Metrics) SetWorkflowEdgesTotal(count int64) {
	m.safeExecute("SetWorkflowEdgesTotal", func() {
		m.WorkflowEdgesTotal.Set(float64(count))
	})
}
