// Package gen produces the Kotlin sources that credinject injects into a
// host React Native Android project, and resolves where those sources and
// the files patched around them live inside the project tree.
//
// Both generators are pure: the same package identifier always yields
// byte-identical output. The identifier is embedded verbatim into the
// generated namespace declaration and nowhere else.
package gen

import (
	"strings"
	"text/template"
)

// moduleSourceTmpl is the native sign-in module. It brokers one Credential
// Manager request per call: fresh nonce, single await, six-field result map
// on success, tagged rejection codes on every distinguishable failure.
const moduleSourceTmpl = `package {{.Package}}.gsignin

import android.util.Base64
import androidx.credentials.CredentialManager
import androidx.credentials.CustomCredential
import androidx.credentials.GetCredentialRequest
import androidx.credentials.exceptions.GetCredentialCancellationException
import androidx.credentials.exceptions.GetCredentialException
import androidx.credentials.exceptions.NoCredentialException
import com.facebook.react.bridge.Arguments
import com.facebook.react.bridge.Promise
import com.facebook.react.bridge.ReactApplicationContext
import com.facebook.react.bridge.ReactContextBaseJavaModule
import com.facebook.react.bridge.ReactMethod
import com.google.android.libraries.identity.googleid.GetGoogleIdOption
import com.google.android.libraries.identity.googleid.GoogleIdTokenCredential
import com.google.android.libraries.identity.googleid.GoogleIdTokenParsingException
import java.security.SecureRandom
import kotlinx.coroutines.CoroutineScope
import kotlinx.coroutines.Dispatchers
import kotlinx.coroutines.launch

class GoogleSignInModule(reactContext: ReactApplicationContext) :
    ReactContextBaseJavaModule(reactContext) {

  override fun getName() = NAME

  @ReactMethod
  fun signIn(serverClientId: String, promise: Promise) {
    val activity = currentActivity
    if (activity == null) {
      promise.reject("NO_ACTIVITY", "No foreground activity to attach the credential request to")
      return
    }
    val nonce = ByteArray(32).also { SecureRandom().nextBytes(it) }.let {
      Base64.encodeToString(it, Base64.URL_SAFE or Base64.NO_WRAP or Base64.NO_PADDING)
    }
    val option = GetGoogleIdOption.Builder()
        .setServerClientId(serverClientId)
        .setFilterByAuthorizedAccounts(false)
        .setNonce(nonce)
        .build()
    val request = GetCredentialRequest.Builder().addCredentialOption(option).build()
    val manager = CredentialManager.create(activity)
    CoroutineScope(Dispatchers.Main).launch {
      try {
        val response = manager.getCredential(activity, request)
        val credential = response.credential
        if (credential is CustomCredential &&
            credential.type == GoogleIdTokenCredential.TYPE_GOOGLE_ID_TOKEN_CREDENTIAL) {
          val token = GoogleIdTokenCredential.createFrom(credential.data)
          val result = Arguments.createMap().apply {
            putString("idToken", token.idToken)
            putString("id", token.id)
            putString("displayName", token.displayName)
            putString("givenName", token.givenName)
            putString("familyName", token.familyName)
            putString("photoUrl", token.profilePictureUri?.toString())
          }
          promise.resolve(result)
        } else {
          promise.reject("PARSE_ERROR", "Credential response did not contain a Google ID token")
        }
      } catch (e: GetCredentialCancellationException) {
        promise.reject("SIGN_IN_CANCELLED", "Sign-in was cancelled by the user")
      } catch (e: NoCredentialException) {
        promise.reject("NO_CREDENTIAL", "No Google account credential is available")
      } catch (e: GoogleIdTokenParsingException) {
        promise.reject("PARSE_ERROR", "Received an unparseable Google ID token")
      } catch (e: GetCredentialException) {
        promise.reject("PROVIDER_ERROR", e.message)
      }
    }
  }

  companion object {
    const val NAME = "CredInjectGoogleSignIn"
  }
}
`

// packageSourceTmpl registers exactly one module instance with the host
// application's module registry and exposes no view managers.
const packageSourceTmpl = `package {{.Package}}.gsignin

import com.facebook.react.ReactPackage
import com.facebook.react.bridge.NativeModule
import com.facebook.react.bridge.ReactApplicationContext
import com.facebook.react.uimanager.ViewManager

class GoogleSignInPackage : ReactPackage {
  override fun createNativeModules(reactContext: ReactApplicationContext): List<NativeModule> =
      listOf(GoogleSignInModule(reactContext))

  override fun createViewManagers(reactContext: ReactApplicationContext): List<ViewManager<*, *>> =
      emptyList()
}
`

var (
	moduleTmpl  = template.Must(template.New("module").Parse(moduleSourceTmpl))
	packageTmpl = template.Must(template.New("package").Parse(packageSourceTmpl))
)

type templateData struct {
	Package string
}

// ModuleSource renders the sign-in module for the given package identifier.
func ModuleSource(pkg string) string {
	return render(moduleTmpl, pkg)
}

// PackageSource renders the registration container for the given package
// identifier.
func PackageSource(pkg string) string {
	return render(packageTmpl, pkg)
}

func render(t *template.Template, pkg string) string {
	var b strings.Builder
	if err := t.Execute(&b, templateData{Package: pkg}); err != nil {
		// The templates are static and the data is a plain string, so an
		// execute failure is a programming error, not an input error.
		panic(err)
	}
	return b.String()
}
