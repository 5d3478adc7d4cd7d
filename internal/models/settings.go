package models

// Setting keys owned by the helptext settings table.
const (
	SettingAnonymize         = "helptext.anonymize"
	SettingAutomaticResponse = "helptext.sms_automatic_response"
	SettingSMSProvider       = "helptext.sms_provider"
	SettingSenderTypeContact = "helptext.sender_type_id_contact"
	SettingSenderTypeHelper  = "helptext.sender_type_id_user"
)

// Settings is a per-request snapshot of the routing configuration. It is read
// from the settings store once per inbound event and never cached across
// requests.
type Settings struct {
	Anonymize         bool
	AutomaticResponse bool
	Provider          string
	SenderTypeContact int64
	SenderTypeHelper  int64
}
