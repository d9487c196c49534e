package usecasecontract

// IMetrics records domain events for monitoring.
type IMetrics interface {
	RecordRegistration(outcome string)
	RecordLogin(outcome string)
	RecordApproval()
	RecordMessagePosted()
	RecordAssetDeleteFailure()
}
