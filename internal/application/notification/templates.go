package notification

import (
	"fmt"
	"strings"
)

var templates = map[string]map[Kind]string{
	"en": {
		KindWelcome:       "Welcome to the marketplace, %s. Upload your KYC documents to finish onboarding.",
		KindActivated:     "Congratulations %s, your shop is live. Starting tier: %s.",
		KindSuspended:     "Your vendor account has been suspended. Reason: %s",
		KindReinstated:    "Your vendor account has been reinstated. Reason: %s",
		KindRejected:      "Your vendor application was not approved. Reason: %s",
		KindPayoutSettled: "Payout of BDT %s for %s has been sent. Reference: %s",
		KindPayoutFailed:  "Payout of BDT %s for %s could not be sent. Our team will contact you.",
	},
	"bn": {
		KindWelcome:       "মার্কেটপ্লেসে স্বাগতম, %s। অনবোর্ডিং শেষ করতে আপনার KYC ডকুমেন্ট আপলোড করুন।",
		KindActivated:     "অভিনন্দন %s, আপনার দোকান চালু হয়েছে। শুরুর টিয়ার: %s।",
		KindSuspended:     "আপনার ভেন্ডর অ্যাকাউন্ট স্থগিত করা হয়েছে। কারণ: %s",
		KindReinstated:    "আপনার ভেন্ডর অ্যাকাউন্ট পুনরায় চালু করা হয়েছে। কারণ: %s",
		KindRejected:      "আপনার ভেন্ডর আবেদন অনুমোদিত হয়নি। কারণ: %s",
		KindPayoutSettled: "%s টাকা পেআউট (%s) পাঠানো হয়েছে। রেফারেন্স: %s",
		KindPayoutFailed:  "%s টাকা পেআউট (%s) পাঠানো যায়নি। আমাদের টিম আপনার সাথে যোগাযোগ করবে।",
	},
}

// Render formats the message for kind in the vendor's language. Locales are
// matched on their language part ("bn-BD" uses "bn"); unknown ones get English.
func Render(kind Kind, locale string, args ...any) string {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	set, ok := templates[lang]
	if !ok {
		set = templates["en"]
	}
	tmpl, ok := set[kind]
	if !ok {
		return string(kind)
	}
	return fmt.Sprintf(tmpl, args...)
}
