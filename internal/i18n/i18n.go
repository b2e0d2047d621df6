package i18n

import "fmt"

// The site serves a Persian-speaking audience only, so the catalog carries a
// single fa-IR locale. Keys keep the error.* / message.* convention so the
// frontend can rely on stable message text per key.
var catalog = map[string]string{
	// Generic
	"error.bad_request":  "درخواست نامعتبر است",
	"error.invalid_id":   "شناسه نامعتبر است",
	"error.unauthorized": "دسترسی غیرمجاز. لطفا وارد شوید",
	"error.not_found":    "موردی یافت نشد",
	"error.internal":     "خطای داخلی سرور. لطفا بعدا تلاش کنید",
	"error.fetch_failed": "دریافت اطلاعات با خطا مواجه شد",
	"error.save_failed":  "ذخیره اطلاعات با خطا مواجه شد",

	// Rate limiting
	"error.rate_limited":            "تعداد درخواست‌ها بیش از حد مجاز است. لطفا بعدا تلاش کنید",
	"error.rate_limited_contact":    "شما امروز به حداکثر تعداد ارسال مجاز رسیده‌اید",
	"error.rate_limited_otp_verify": "تعداد تلاش‌های تایید بیش از حد مجاز است. چند دقیقه دیگر تلاش کنید",
	"error.rate_limited_login":      "تعداد تلاش‌های ورود بیش از حد مجاز است. ۱۵ دقیقه دیگر تلاش کنید",
	"error.rate_limited_upload":     "تعداد بارگذاری‌ها بیش از حد مجاز است",
	"error.rate_limited_view":       "ثبت بازدید بیش از حد مجاز است",
	"error.rate_limit_unavailable":  "سرویس موقتا در دسترس نیست. لطفا بعدا تلاش کنید",

	// OTP flow
	"error.invalid_phone":    "شماره موبایل وارد شده معتبر نیست",
	"error.otp_not_found":    "کد تایید برای این شماره یافت نشد",
	"error.otp_expired":      "کد تایید منقضی شده است. لطفا دوباره درخواست دهید",
	"error.otp_mismatch":     "کد تایید وارد شده صحیح نیست",
	"error.otp_send_failed":  "ارسال پیامک با خطا مواجه شد. لطفا بعدا تلاش کنید",
	"error.otp_not_verified": "ابتدا شماره موبایل خود را تایید کنید",
	"message.otp_sent":       "کد تایید به شماره شما ارسال شد",
	"message.otp_verified":   "شماره موبایل با موفقیت تایید شد",

	// Contact form
	"error.contact_fields_required": "لطفا همه فیلدهای الزامی را تکمیل کنید",
	"error.email_send_failed":       "خطا در ارسال پیام. لطفا بعدا تلاش کنید",
	"message.contact_sent":          "پیام شما با موفقیت ارسال شد",

	// Admin auth
	"error.login_invalid":    "نام کاربری یا رمز عبور اشتباه است",
	"error.captcha_required": "لطفا کد امنیتی را وارد کنید",
	"error.captcha_invalid":  "کد امنیتی وارد شده صحیح نیست",
	"message.login_ok":       "ورود موفقیت‌آمیز بود",
	"message.logout_ok":      "خروج با موفقیت انجام شد",

	// Content
	"error.blog_not_found":         "مقاله مورد نظر یافت نشد",
	"error.announcement_not_found": "اطلاعیه‌ای یافت نشد",
	"error.pricing_not_found":      "تعرفه مورد نظر یافت نشد",
	"error.slug_exists":            "این اسلاگ قبلا استفاده شده است",
	"message.deleted":              "با موفقیت حذف شد",
	"message.view_recorded":        "بازدید ثبت شد",

	// Upload
	"error.upload_invalid_type": "فقط فایل‌های تصویری مجاز هستند",
	"error.upload_too_large":    "حجم فایل بیشتر از حد مجاز است (حداکثر ۵ مگابایت)",
	"error.upload_failed":       "بارگذاری فایل با خطا مواجه شد",
	"error.image_not_found":     "تصویر مورد نظر یافت نشد",

	// Shortener
	"error.short_url_invalid":    "آدرس وارد شده معتبر نیست",
	"error.short_link_not_found": "لینک مورد نظر یافت نشد",
}

// T resolves a message key to its Persian text. Unknown keys are returned
// unchanged so a missing entry is visible instead of silent.
func T(key string) string {
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return key
}

// Sprintf resolves a key and applies format arguments.
func Sprintf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}
