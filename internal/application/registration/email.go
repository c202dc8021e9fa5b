package registration

import "fmt"

const otpSubject = "Verify your email"

func otpEmailBody(name, code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2>Email Verification Required</h2>
    <p>Hello %s,</p>
    <p>Thank you for registering! To complete your registration, please verify your email address using the OTP below:</p>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
      <div style="font-size: 32px; font-weight: bold; letter-spacing: 5px;">%s</div>
      <p><strong>This OTP will expire in 10 minutes</strong></p>
    </div>
    <p>If you didn't create an account, please ignore this email.</p>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 14px;">
      <p>This is an automated email. Please do not reply.</p>
    </div>
  </div>
</body>
</html>`, name, code)
}
