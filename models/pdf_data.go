package models

type DispatchPDFData struct {
	Company      *WarehouseProfile // warehouse letterhead
	Note         *DispatchNote     // dispatch details
	Contacts     string            // formatted contact numbers
	Date         string            // formatted dispatch date
	TotalBottles int64             // bottles across all packs
	PackCount    int
	CopyTitle    string
}
